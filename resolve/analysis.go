package resolve

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/scan"
)

// InstructionKind tags the shape of one AnalysisInstruction. This is
// deliberately a thin, backend-opaque contract: enough structure for a
// consumer to walk and lower, nothing about how it executes.
type InstructionKind int

const (
	LoadLiteral InstructionKind = iota
	LoadSymbol
	StoreBinding
	BinaryOp
	UnaryOp
	Call
	MemberAccess
	ElementIndex
	Construct
	Branch
	Loop
	ClosureInstr
	ReturnInstr
	BreakInstr
	ContinueInstr
	Block
	Declare
)

func (k InstructionKind) String() string {
	switch k {
	case LoadLiteral:
		return "load_literal"
	case LoadSymbol:
		return "load_symbol"
	case StoreBinding:
		return "store_binding"
	case BinaryOp:
		return "binary_op"
	case UnaryOp:
		return "unary_op"
	case Call:
		return "call"
	case MemberAccess:
		return "member_access"
	case ElementIndex:
		return "index"
	case Construct:
		return "construct"
	case Branch:
		return "branch"
	case Loop:
		return "loop"
	case ClosureInstr:
		return "closure"
	case ReturnInstr:
		return "return"
	case BreakInstr:
		return "break"
	case ContinueInstr:
		return "continue"
	case Declare:
		return "declare"
	default:
		return "block"
	}
}

// AnalysisInstruction is the resolver's lowered output for one Element:
// a closed tagged union carrying just enough payload (a token, an
// operator, a resolved Type, a symbol id, nested children) for an
// external backend to walk.
type AnalysisInstruction struct {
	Kind InstructionKind
	Span axo.Span

	Token *scan.Token
	Op    *scan.Token
	Type  Type

	SymbolID uint64
	Name     string

	Children []AnalysisInstruction
}

// Analysis pairs one lowered instruction with its source span.
type Analysis struct {
	Instruction AnalysisInstruction
	Span        axo.Span
}
