package roadnet

import "github.com/pkg/errors"

// ImportFromOSMFile reads OSM file (*.osm, *.xml or *.pbf) and builds network of it
func ImportFromOSMFile(fileName string, options ...func(*Importer)) (*Network, error) {
	return NewImporter(options...).ImportFromOSMFile(fileName)
}

// ImportFromOSMFile reads OSM file (*.osm, *.xml or *.pbf) and builds network of it
func (importer *Importer) ImportFromOSMFile(fileName string) (*Network, error) {
	importer.logger.Debug("Importer parameters", "params", importer.String())
	dataOSM, err := readOSM(fileName, importer.logger)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	segments, err := dataOSM.prepareMedium(importer)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare ways")
	}
	net, err := dataOSM.prepareNetwork(importer, segments)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare road network")
	}
	return net, nil
}
