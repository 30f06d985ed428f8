package builder

// Constructor names used to prefix errors.
const (
	MethodUniform  = "Uniform"
	MethodSpread   = "Spread"
	MethodGrid     = "Grid"
	MethodGridN    = "GridN"
	MethodCircle   = "Circle"
	MethodLine     = "Line"
	MethodCluster  = "Cluster"
	MethodClusterN = "ClusterN"
	MethodFixed    = "Fixed"
)

// FirstPointID is the ID given to the first generated point.
const FirstPointID = 1

// Default bounds: the drawable area of a 700×500 canvas with a 50px margin.
const (
	DefaultBoundsWidth  = 600.0
	DefaultBoundsHeight = 400.0
)

// MinPoints is the smallest count accepted by the n-point constructors.
const MinPoints = 1

// MinGridDim is the smallest allowed rows or cols for Grid.
const MinGridDim = 1
