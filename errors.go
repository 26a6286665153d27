package roadnet

import (
	"github.com/pkg/errors"
)

var (
	ErrDuplicateNode = errors.New("node already exists")
	ErrDuplicateEdge = errors.New("edge already exists")
	ErrNodeNotFound  = errors.New("node not found")
	ErrEdgeNotFound  = errors.New("edge not found")

	// Fatal format errors. Emission stops on the first one met.
	ErrDanglingConnection = errors.New("connection references missing edge or lane")
	ErrNegativeSpeed      = errors.New("negative lane speed")
	ErrUndefinedDirection = errors.New("undefined link direction")
)
