package roadnet

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Writer serializes network into the XML network description
type Writer struct {
	noInternalLinks bool
	noNames         bool
	logger          *log.Logger
	rightOfWay      RightOfWay
}

// NewWriter creates writer. Internal links and street names are written by default
func NewWriter(options ...func(*Writer)) *Writer {
	writer := &Writer{
		noInternalLinks: false,
		noNames:         false,
	}
	for _, option := range options {
		option(writer)
	}
	return writer
}

// WithNoInternalLinks disables internal edges, junctions and connections
func WithNoInternalLinks(noInternalLinks bool) func(*Writer) {
	return func(writer *Writer) {
		writer.noInternalLinks = noInternalLinks
	}
}

// WithNoNames suppresses street names
func WithNoNames(noNames bool) func(*Writer) {
	return func(writer *Writer) {
		writer.noNames = noNames
	}
}

// WithLogger sets diagnostics logger
func WithLogger(logger *log.Logger) func(*Writer) {
	return func(writer *Writer) {
		writer.logger = logger
	}
}

// WithRightOfWay sets right-of-way engine. GeometricRightOfWay is used when not set
func WithRightOfWay(row RightOfWay) func(*Writer) {
	return func(writer *Writer) {
		writer.rightOfWay = row
	}
}

// WriteNetworkFile writes network into the file. Empty file name means nothing to do
func (writer *Writer) WriteNetworkFile(fname string, net *Network) error {
	if fname == "" {
		return nil
	}
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	err = writer.WriteNetwork(file, net)
	if closeErr := file.Close(); closeErr != nil && err == nil {
		return errors.Wrap(closeErr, "Can't close file")
	}
	return err
}

// writeSession keeps state of a single emission
type writeSession struct {
	*Writer
	dev     *outputDevice
	net     *Network
	row     RightOfWay
	logger  *log.Logger
	layouts map[NodeID]*InternalLayout
}

// WriteNetwork writes network description into given destination.
// On error output which has already been written is flushed and left as is.
func (writer *Writer) WriteNetwork(w io.Writer, net *Network) error {
	session := writeSession{
		Writer:  writer,
		dev:     newOutputDevice(w),
		net:     net,
		row:     writer.rightOfWay,
		logger:  loggerOrDefault(writer.logger),
		layouts: make(map[NodeID]*InternalLayout),
	}
	if session.row == nil {
		session.row = NewGeometricRightOfWay(net)
	}
	err := session.writeNetwork()
	if err != nil {
		if flushErr := session.dev.flush(); flushErr != nil {
			session.logger.Error("Can't flush partial output", "err", flushErr)
		}
		return err
	}
	return session.dev.close()
}

func (s *writeSession) writeNetwork() error {
	s.dev.writeXMLHeader("net")
	s.writeLocation()
	s.dev.blankLine()

	nodes := s.net.Nodes()
	edges := s.net.Edges()
	includeInternal := !s.noInternalLinks

	if includeInternal {
		hadAny := false
		for _, node := range nodes {
			layout, err := s.layout(node)
			if err != nil {
				return errors.Wrapf(err, "Can't build internal lanes of node '%s'", node.ID)
			}
			for _, lane := range layout.Lanes {
				s.writeInternalEdge(lane.ID, lane.Speed, lane.Length, formatShape(lane.Shape))
				if lane.Split {
					s.writeInternalEdge(lane.SplitID, lane.Speed, lane.SplitLength, formatShape(lane.SplitShape))
				}
				hadAny = true
			}
		}
		if hadAny {
			s.dev.blankLine()
		}
	}

	for _, edge := range edges {
		if err := s.writeEdge(edge); err != nil {
			return err
		}
	}
	if len(edges) > 0 {
		s.dev.blankLine()
	}

	logics := s.net.TLLogics()
	for _, logic := range logics {
		s.writeTLLogic(logic)
	}
	if len(logics) > 0 {
		s.dev.blankLine()
	}

	for _, node := range nodes {
		if err := s.writeJunction(node); err != nil {
			return err
		}
	}
	if len(nodes) > 0 {
		s.dev.blankLine()
	}

	if includeInternal {
		hadAny := false
		for _, node := range nodes {
			layout, err := s.layout(node)
			if err != nil {
				return errors.Wrapf(err, "Can't build internal lanes of node '%s'", node.ID)
			}
			if s.writeInternalJunctions(layout) {
				hadAny = true
			}
		}
		if hadAny {
			s.dev.blankLine()
		}
	}

	numConnections := 0
	for _, edge := range edges {
		for _, conn := range edge.ConnectionsByLane() {
			if err := s.writeConnection(edge, conn, includeInternal); err != nil {
				return err
			}
			numConnections++
		}
	}
	if numConnections > 0 {
		s.dev.blankLine()
	}

	if includeInternal {
		hadAny := false
		for _, node := range nodes {
			layout, err := s.layout(node)
			if err != nil {
				return errors.Wrapf(err, "Can't build internal lanes of node '%s'", node.ID)
			}
			for _, lane := range layout.Lanes {
				if lane.Split {
					s.writeInternalConnection(lane.ID, lane.To.ID, lane.Conn.ToLane, lane.SplitLaneID())
					s.writeInternalConnection(lane.SplitID, lane.To.ID, lane.Conn.ToLane, "")
				} else {
					s.writeInternalConnection(lane.ID, lane.To.ID, lane.Conn.ToLane, "")
				}
				hadAny = true
			}
		}
		if hadAny {
			s.dev.blankLine()
		}
	}

	roundabouts := s.net.Roundabouts()
	for _, r := range roundabouts {
		s.writeRoundabout(r)
	}
	if len(roundabouts) > 0 {
		s.dev.blankLine()
	}

	districts := s.net.Districts()
	for _, district := range districts {
		s.writeDistrict(district)
	}
	if len(districts) > 0 {
		s.dev.blankLine()
	}
	return s.dev.err
}

// layout returns internal lanes of the node. Every pass over the node shares the same layout
func (s *writeSession) layout(node *Node) (*InternalLayout, error) {
	if layout, ok := s.layouts[node.ID]; ok {
		return layout, nil
	}
	layout, err := SynthesizeInternalLanes(s.net, node, s.row, s.logger)
	if err != nil {
		return nil, err
	}
	s.layouts[node.ID] = layout
	return layout, nil
}

func (s *writeSession) writeLocation() {
	loc := s.net.Location
	s.dev.openTag("location").
		attr("netOffset", formatPoint(loc.NetOffset)).
		attr("convBoundary", formatBound(loc.ConvBoundary, outputPrecision))
	if loc.UsingGeoProjection() {
		s.dev.attr("origBoundary", formatBound(loc.OrigBoundary, geoOutputPrecision)).
			attr("projParameter", loc.ProjParameter)
	}
	s.dev.closeEmpty()
}

func (s *writeSession) writeInternalEdge(id string, speed, length float64, shape string) {
	s.dev.openTag("edge").attr("id", id).attr("function", EDGE_INTERNAL.String())
	s.dev.endOpen()
	s.dev.openTag("lane").
		attr("id", id+"_0").
		attrInt("index", 0).
		attrFloat("maxSpeed", speed).
		attrFloat("length", length).
		attr("shape", shape)
	s.dev.closeEmpty()
	s.dev.closeTag()
}

func (s *writeSession) writeEdge(edge *Edge) error {
	s.dev.openTag("edge").
		attr("id", string(edge.ID)).
		attr("from", string(edge.FromNodeID)).
		attr("to", string(edge.ToNodeID))
	if !s.noNames && edge.Name != "" {
		s.dev.attr("name", edge.Name)
	}
	s.dev.attrInt("priority", edge.Priority)
	if edge.TypeName != "" {
		s.dev.attr("type", edge.TypeName)
	}
	if edge.Function == EDGE_CONNECTOR {
		s.dev.attr("function", EDGE_CONNECTOR.String())
	}
	if edge.Spread == SPREAD_CENTER {
		s.dev.attr("spreadType", edge.Spread.String())
	}
	if !edge.HasDefaultGeometry() {
		s.dev.attr("shape", formatShape(edge.Geometry()))
	}
	s.dev.endOpen()
	length := edge.LoadedLength
	if length <= 0 {
		length = positionEps
	}
	for _, lane := range edge.Lanes() {
		if err := s.writeLane(edge, lane, length); err != nil {
			return err
		}
	}
	s.dev.closeTag()
	return nil
}

func (s *writeSession) writeLane(edge *Edge, lane *Lane, length float64) error {
	if lane.Speed < 0 {
		return errors.Wrapf(ErrNegativeSpeed, "speed %s on edge '%s' lane #%d", formatFloat(lane.Speed), edge.ID, lane.Index)
	}
	if lane.Speed == 0 {
		s.logger.Warn("Lane has a maximum velocity of 0", "edge", edge.ID, "lane", lane.Index)
	}
	s.dev.openTag("lane").
		attr("id", edge.LaneID(lane.Index)).
		attrInt("index", lane.Index)
	if !lane.Allowed.Empty() {
		s.dev.attr("allow", lane.Allowed.String())
	}
	if !lane.Forbidden.Empty() {
		s.dev.attr("disallow", lane.Forbidden.String())
	}
	if !lane.Preferred.Empty() {
		s.dev.attr("prefer", lane.Preferred.String())
	}
	shape := lane.Shape
	if lane.EndOffset > 0 {
		length -= lane.EndOffset
		shape = subpart(shape, 0, lineLength(shape)-lane.EndOffset)
	}
	s.dev.attrFloat("maxSpeed", lane.Speed).attrFloat("length", length)
	if lane.EndOffset > 0 {
		s.dev.attrFloat("endOffset", lane.EndOffset)
	}
	if lane.Width > 0 {
		s.dev.attrFloat("width", lane.Width)
	}
	s.dev.attr("shape", formatShape(shape))
	s.dev.closeEmpty()
	return nil
}

func (s *writeSession) writeTLLogic(logic *TLLogic) {
	s.dev.openTag("tlLogic").
		attr("id", logic.ID).
		attr("type", "static").
		attr("programID", logic.ProgramID).
		attrInt("offset", logic.Offset)
	s.dev.endOpen()
	for _, phase := range logic.Phases {
		s.dev.openTag("phase").attrInt("duration", phase.Duration).attr("state", phase.State)
		s.dev.closeEmpty()
	}
	s.dev.closeTag()
}

func (s *writeSession) writeJunction(node *Node) error {
	incoming := s.net.IncomingEdges(node)
	nodeType := NODE_DEAD_END
	for _, inEdge := range incoming {
		if len(inEdge.Connections()) > 0 {
			nodeType = node.Type
			break
		}
	}
	if nodeType == 0 {
		nodeType = NODE_PRIORITY
	}
	incLanes := make([]string, 0)
	for _, inEdge := range incoming {
		for j := 0; j < inEdge.NumLanes(); j++ {
			incLanes = append(incLanes, inEdge.LaneID(j))
		}
	}
	intLanes := make([]string, 0)
	if !s.noInternalLinks {
		layout, err := s.layout(node)
		if err != nil {
			return errors.Wrapf(err, "Can't build internal lanes of node '%s'", node.ID)
		}
		for _, lane := range layout.Lanes {
			if lane.Split {
				intLanes = append(intLanes, lane.SplitLaneID())
			} else {
				intLanes = append(intLanes, lane.LaneID())
			}
		}
	}
	s.dev.openTag("junction").
		attr("id", string(node.ID)).
		attr("type", nodeType.String()).
		attrFloat("x", node.Pos.X()).
		attrFloat("y", node.Pos.Y()).
		attr("incLanes", strings.Join(incLanes, " ")).
		attr("intLanes", strings.Join(intLanes, " ")).
		attr("shape", formatShape(node.Shape))
	s.dev.endOpen()
	s.dev.raw(s.row.JunctionLogic(node))
	s.dev.closeTag()
	return nil
}

func (s *writeSession) writeInternalJunctions(layout *InternalLayout) bool {
	ret := false
	node := layout.Node
	for _, lane := range layout.Lanes {
		if !lane.Split {
			continue
		}
		conn := lane.Conn
		incLanes := []string{lane.LaneID()}
		sources := s.row.CrossingSources(node, lane.From, lane.FromLane, lane.To, conn.ToLane)
		incLanes = append(incLanes, layout.internalLaneIDs(sources)...)
		crossed := s.row.CrossedMovements(node, lane.From, lane.FromLane, lane.To, conn.ToLane)
		s.dev.openTag("junction").
			attr("id", lane.SplitLaneID()).
			attr("type", NODE_INTERNAL.String()).
			attrFloat("x", lane.SplitPos.X()).
			attrFloat("y", lane.SplitPos.Y()).
			attr("incLanes", strings.Join(incLanes, " ")).
			attr("intLanes", strings.Join(layout.internalLaneIDs(crossed), " ")).
			attr("shape", "")
		s.dev.closeEmpty()
		ret = true
	}
	return ret
}

func (s *writeSession) writeConnection(from *Edge, conn *Connection, includeInternal bool) error {
	if conn.ToEdge == "" {
		return errors.Wrapf(ErrDanglingConnection, "connection from '%s' lane %d has no destination edge", from.ID, conn.FromLane)
	}
	to := s.net.Edge(conn.ToEdge)
	if to == nil || to.Lane(conn.ToLane) == nil || from.Lane(conn.FromLane) == nil {
		return errors.Wrapf(ErrDanglingConnection, "connection from '%s' lane %d to '%s' lane %d", from.ID, conn.FromLane, conn.ToEdge, conn.ToLane)
	}
	node := s.net.Node(from.ToNodeID)
	dir := s.row.LinkDirection(node, from, to)
	if dir == LINKDIR_NODIR {
		return errors.Wrapf(ErrUndefinedDirection, "connection from '%s' to '%s'", from.ID, to.ID)
	}
	s.dev.openTag("connection").
		attr("from", string(from.ID)).
		attr("to", string(to.ID)).
		attr("lane", laneLink(conn.FromLane, conn.ToLane))
	if includeInternal && conn.Via != "" {
		s.dev.attr("via", conn.Via)
	}
	if conn.TLID != "" {
		s.dev.attr("tl", conn.TLID).attrInt("linkIndex", conn.TLLinkIndex)
	}
	s.dev.attr("dir", dir.String())
	state := LINKSTATE_TL_OFF_BLINKING
	if conn.TLID == "" {
		state = s.row.LinkState(node, from, to, conn.ToLane, conn.MayDefinitelyPass)
	}
	s.dev.attr("state", state.String())
	s.dev.closeEmpty()
	return nil
}

func (s *writeSession) writeInternalConnection(from string, to EdgeID, toLane int, via string) {
	s.dev.openTag("connection").
		attr("from", from).
		attr("to", string(to)).
		attr("lane", laneLink(0, toLane))
	if via != "" {
		s.dev.attr("via", via)
	}
	s.dev.attr("dir", LINKDIR_STRAIGHT.String()).attr("state", LINKSTATE_MAJOR.String())
	s.dev.closeEmpty()
}

func (s *writeSession) writeRoundabout(r *Roundabout) {
	nodes := r.Nodes(s.net)
	ids := make([]string, len(nodes))
	for i, id := range nodes {
		ids[i] = string(id)
	}
	s.dev.openTag("roundabout").attr("nodes", strings.Join(ids, " "))
	s.dev.closeEmpty()
}

func (s *writeSession) writeDistrict(district *District) {
	sourceW := district.NormalizedSourceWeights()
	sinkW := district.NormalizedSinkWeights()
	s.dev.openTag("taz").attr("id", district.ID)
	if len(district.Shape) > 0 {
		s.dev.attr("shape", formatShape(district.Shape))
	}
	s.dev.endOpen()
	for i, source := range district.Sources {
		s.dev.openTag("tazSource").attr("id", string(source)).attrFloat("weight", sourceW[i])
		s.dev.closeEmpty()
	}
	for i, sink := range district.Sinks {
		s.dev.openTag("tazSink").attr("id", string(sink)).attrFloat("weight", sinkW[i])
		s.dev.closeEmpty()
	}
	s.dev.closeTag()
}

func laneLink(fromLane, toLane int) string {
	return strconv.Itoa(fromLane) + ":" + strconv.Itoa(toLane)
}
