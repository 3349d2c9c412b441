package assembler

// NodeType defines the type of an assembly node.
type NodeType int

const (
	// NodeCompute is a dest=comp;jump instruction.
	NodeCompute NodeType = iota
	// NodeAddress is an @target instruction.
	NodeAddress
	// NodeLabel is a (name) declaration. It emits no code.
	NodeLabel
)

func (t NodeType) String() string {
	switch t {
	case NodeCompute:
		return "compute"
	case NodeAddress:
		return "address"
	case NodeLabel:
		return "label"
	}
	return "unknown"
}

// Node represents one parsed line of the assembly source.
type Node struct {
	Type NodeType
	Line Line

	// Label or address target.
	Symbol string

	Dest string
	Comp string
	Jump string
}
