package resolve

import (
	"github.com/liagha/axo"
	"github.com/liagha/axo/parse"
	"github.com/liagha/axo/scan"
)

// Resolver walks a program's Elements depth-first, installing Symbols
// into a scope tree as declarations are encountered, resolving name
// references against it, running the minimal Check inference, and
// lowering each Element to an Analysis for an external backend to
// consume — this package has no interpreter or codegen of its own.
type Resolver struct {
	Context *axo.Context
	Root    *parse.Scope
	Current *parse.Scope
}

func NewResolver(ctx *axo.Context) *Resolver {
	root := parse.NewScope(nil)
	return &Resolver{Context: ctx, Root: root, Current: root}
}

// Enter pushes a new child scope, used for block bodies, closure and
// method parameter lists, extension member scopes, and for-loop binding
// patterns.
func (r *Resolver) Enter() { r.Current = parse.NewScope(r.Current) }

// Exit pops back to the parent scope. A no-op at the root, so a stray
// Exit can never climb above it.
func (r *Resolver) Exit() {
	if r.Current.Parent != nil {
		r.Current = r.Current.Parent
	}
}

// Insert assigns the symbol an id and installs it into the current
// scope, shadowing any existing entry of the same name — plain name
// equality is enough since this grammar has no compound/qualified
// names.
func (r *Resolver) Insert(sym parse.Symbol) parse.Symbol {
	sym.ID = r.Context.NextID()
	sym.Scope = r.Current
	r.Current.Insert(sym)
	return sym
}

// Lookup walks outward from the current scope.
func (r *Resolver) Lookup(name string) (parse.Symbol, bool) {
	return r.Current.Lookup(name)
}

// Resolve drives a whole program: one Analysis per top-level Element,
// diagnostics recorded on Context.ResolveErrors along the way.
func (r *Resolver) Resolve(elements []parse.Element) []Analysis {
	out := make([]Analysis, 0, len(elements))
	for _, el := range elements {
		out = append(out, r.Analyze(el))
	}
	return out
}

// Analyze lowers a single Element to an Analysis, resolving any name
// references and installing any declaration it carries along the way.
func (r *Resolver) Analyze(el parse.Element) Analysis {
	return Analysis{Instruction: r.resolveElement(el), Span: el.Span}
}

func (r *Resolver) resolveElement(el parse.Element) AnalysisInstruction {
	switch el.Kind {
	case parse.Literal:
		return r.resolveLiteral(el)
	case parse.Binary:
		left := r.resolveElement(*el.Left)
		right := r.resolveElement(*el.Right)
		return AnalysisInstruction{
			Kind: BinaryOp, Span: el.Span, Op: el.Op,
			Type:     r.Check(el),
			Children: []AnalysisInstruction{left, right},
		}
	case parse.Unary:
		operand := r.resolveElement(*el.Operand)
		return AnalysisInstruction{Kind: UnaryOp, Span: el.Span, Op: el.Op, Type: r.Check(el), Children: []AnalysisInstruction{operand}}
	case parse.Assign:
		target := r.resolveElement(*el.Target)
		value := r.resolveElement(*el.Value)
		return AnalysisInstruction{Kind: StoreBinding, Span: el.Span, Op: el.Op, Children: []AnalysisInstruction{target, value}}
	case parse.Symbolize:
		return r.resolveSymbolize(el)
	case parse.Closure:
		r.Enter()
		for _, p := range el.Params {
			r.Insert(p)
		}
		var body AnalysisInstruction
		if el.Body != nil {
			body = r.resolveElement(*el.Body)
		}
		r.Exit()
		return AnalysisInstruction{Kind: ClosureInstr, Span: el.Span, Type: r.Check(el), Children: []AnalysisInstruction{body}}
	case parse.Delimited:
		r.Enter()
		children := make([]AnalysisInstruction, 0, len(el.Items))
		for _, item := range el.Items {
			children = append(children, r.resolveElement(item))
		}
		r.Exit()
		return AnalysisInstruction{Kind: Block, Span: el.Span, Children: children}
	case parse.Index:
		children := []AnalysisInstruction{r.resolveElement(*el.Target)}
		for _, item := range el.Items {
			children = append(children, r.resolveElement(item))
		}
		return AnalysisInstruction{Kind: ElementIndex, Span: el.Span, Children: children}
	case parse.Invoke:
		children := []AnalysisInstruction{r.resolveElement(*el.Target)}
		for _, item := range el.Items {
			children = append(children, r.resolveElement(item))
		}
		return AnalysisInstruction{Kind: Call, Span: el.Span, Children: children}
	case parse.Access:
		target := r.resolveElement(*el.Target)
		return AnalysisInstruction{Kind: MemberAccess, Span: el.Span, Token: el.Member, Children: []AnalysisInstruction{target}}
	case parse.Construct:
		children := make([]AnalysisInstruction, 0, len(el.Items)+1)
		if el.Target != nil {
			children = append(children, r.resolveElement(*el.Target))
		}
		for _, item := range el.Items {
			children = append(children, r.resolveElement(item))
		}
		return AnalysisInstruction{Kind: Construct, Span: el.Span, Children: children}
	case parse.Conditional:
		children := []AnalysisInstruction{r.resolveElement(*el.Condition)}
		if el.Then != nil {
			children = append(children, r.resolveElement(*el.Then))
		}
		if el.Else != nil {
			children = append(children, r.resolveElement(*el.Else))
		}
		return AnalysisInstruction{Kind: Branch, Span: el.Span, Children: children}
	case parse.While:
		children := []AnalysisInstruction{r.resolveElement(*el.Condition)}
		if el.Body != nil {
			children = append(children, r.resolveElement(*el.Body))
		}
		return AnalysisInstruction{Kind: Loop, Span: el.Span, Children: children}
	case parse.Cycle:
		r.Enter()
		if el.Pattern != nil && el.Pattern.Token != nil {
			r.Insert(parse.Symbol{Kind: parse.Binding, Name: el.Pattern.Token, Span: el.Pattern.Span})
		}
		var children []AnalysisInstruction
		if el.Iterable != nil {
			children = append(children, r.resolveElement(*el.Iterable))
		}
		if el.Body != nil {
			children = append(children, r.resolveElement(*el.Body))
		}
		r.Exit()
		return AnalysisInstruction{Kind: Loop, Span: el.Span, Children: children}
	case parse.Label:
		var children []AnalysisInstruction
		if el.Target2 != nil {
			children = append(children, r.resolveElement(*el.Target2))
		}
		return AnalysisInstruction{Kind: Block, Span: el.Span, Token: el.Name, Children: children}
	case parse.Return:
		var children []AnalysisInstruction
		if el.Value != nil {
			children = append(children, r.resolveElement(*el.Value))
		}
		return AnalysisInstruction{Kind: ReturnInstr, Span: el.Span, Children: children}
	case parse.Break:
		return AnalysisInstruction{Kind: BreakInstr, Span: el.Span}
	case parse.Continue:
		return AnalysisInstruction{Kind: ContinueInstr, Span: el.Span}
	default:
		return AnalysisInstruction{Kind: Block, Span: el.Span}
	}
}

func (r *Resolver) resolveLiteral(el parse.Element) AnalysisInstruction {
	if el.Token == nil {
		return AnalysisInstruction{Kind: LoadLiteral, Span: el.Span, Type: UnknownType()}
	}
	if el.Token.Kind != scan.Identifier {
		return AnalysisInstruction{Kind: LoadLiteral, Span: el.Span, Token: el.Token, Type: r.Check(el)}
	}
	name := el.Token.AsString
	sym, ok := r.Lookup(name)
	if !ok {
		suggestion := closestName(name, r.Current)
		r.Context.ResolveErrors = append(r.Context.ResolveErrors, undefinedSymbol(name, suggestion, el.Span))
		return AnalysisInstruction{Kind: LoadSymbol, Span: el.Span, Token: el.Token, Name: name, Type: UnknownType()}
	}
	return AnalysisInstruction{Kind: LoadSymbol, Span: el.Span, Token: el.Token, SymbolID: sym.ID, Name: sym.NameString(), Type: r.Check(el)}
}

func (r *Resolver) resolveSymbolize(el parse.Element) AnalysisInstruction {
	if el.Symbol == nil {
		return AnalysisInstruction{Kind: Declare, Span: el.Span}
	}
	sym := *el.Symbol

	switch sym.Kind {
	case parse.Binding:
		var children []AnalysisInstruction
		if el.Value != nil {
			children = append(children, r.resolveElement(*el.Value))
		}
		inserted := r.Insert(sym)
		return AnalysisInstruction{
			Kind: StoreBinding, Span: el.Span,
			SymbolID: inserted.ID, Name: inserted.NameString(),
			Type:     r.Check(el),
			Children: children,
		}

	case parse.Method:
		inserted := r.Insert(sym)
		r.Enter()
		for _, p := range sym.Params {
			r.Insert(p)
		}
		var children []AnalysisInstruction
		if sym.Block != nil {
			children = append(children, r.resolveElement(*sym.Block))
		}
		r.Exit()
		return AnalysisInstruction{Kind: Declare, Span: el.Span, SymbolID: inserted.ID, Name: inserted.NameString(), Children: children}

	case parse.Extension:
		inserted := r.Insert(sym)
		r.Enter()
		children := make([]AnalysisInstruction, 0, len(sym.Body))
		for _, m := range sym.Body {
			children = append(children, r.resolveSymbolize(parse.Element{Kind: parse.Symbolize, Span: m.Span, Symbol: &m}))
		}
		r.Exit()
		return AnalysisInstruction{Kind: Declare, Span: el.Span, SymbolID: inserted.ID, Name: inserted.NameString(), Children: children}

	case parse.Preference:
		inserted := r.Insert(sym)
		r.Enter()
		children := make([]AnalysisInstruction, 0, len(sym.Body))
		for _, m := range sym.Body {
			children = append(children, r.resolveSymbolize(parse.Element{Kind: parse.Symbolize, Span: m.Span, Symbol: &m}))
		}
		r.Exit()
		return AnalysisInstruction{Kind: Declare, Span: el.Span, SymbolID: inserted.ID, Name: inserted.NameString(), Children: children}

	default:
		// Structure, Enumeration, Module, Inclusion: plain declaration,
		// no nested scope. FieldCountMismatch is reachable from Check
		// once a Construct literal is matched against its structure's
		// declared Fields; see checkConstruct below.
		inserted := r.Insert(sym)
		return AnalysisInstruction{Kind: Declare, Span: el.Span, SymbolID: inserted.ID, Name: inserted.NameString()}
	}
}

// Check runs the resolver's minimal type inference over an Element,
// enough to drive TypeMismatch/FieldCountMismatch diagnostics — not a
// full checker, best-effort only. The Construct case is wired and
// covered by resolver_test.go, but no grammar production currently
// builds an Element{Kind: Construct} (see DESIGN.md); it goes live the
// moment a struct-literal production is added to parse/grammar.go.
func (r *Resolver) Check(el parse.Element) Type {
	switch el.Kind {
	case parse.Literal:
		return r.checkLiteral(el)
	case parse.Binary:
		left := r.Check(*el.Left)
		right := r.Check(*el.Right)
		if left.Kind != Unknown && right.Kind != Unknown && !left.Equal(right) {
			r.Context.ResolveErrors = append(r.Context.ResolveErrors, typeMismatch(left, right, el.Span))
			return UnknownType()
		}
		return left
	case parse.Unary:
		if el.Operand == nil {
			return UnknownType()
		}
		return r.Check(*el.Operand)
	case parse.Closure:
		params := make([]Type, len(el.Params))
		for i := range el.Params {
			params[i] = UnknownType()
		}
		ret := VoidType()
		return Type{Kind: Function, Params: params, Return: &ret}
	case parse.Assign:
		if el.Value != nil {
			return r.Check(*el.Value)
		}
		return UnknownType()
	case parse.Construct:
		return r.checkConstruct(el)
	default:
		return UnknownType()
	}
}

// checkConstruct matches a Construct's argument count against its named
// structure's declared Fields, the one place FieldCountMismatch fires.
func (r *Resolver) checkConstruct(el parse.Element) Type {
	if el.Target == nil || el.Target.Token == nil {
		return UnknownType()
	}
	name := el.Target.Token.AsString
	sym, ok := r.Lookup(name)
	if !ok || sym.Kind != parse.Structure {
		return NamedType(name)
	}
	if len(el.Items) != len(sym.Fields) {
		r.Context.ResolveErrors = append(r.Context.ResolveErrors, fieldCountMismatch(name, el.Span))
	}
	return NamedType(name)
}

func (r *Resolver) checkLiteral(el parse.Element) Type {
	if el.Token == nil {
		return UnknownType()
	}
	switch el.Token.Kind {
	case scan.Integer:
		return IntType()
	case scan.Float:
		return FloatType()
	case scan.Boolean:
		return BoolType()
	case scan.String:
		return StrType()
	case scan.CharacterKind:
		return CharType()
	case scan.Identifier:
		sym, ok := r.Lookup(el.Token.AsString)
		if !ok {
			return UnknownType()
		}
		if sym.Type != nil {
			return typeFromAnnotation(*sym.Type)
		}
		if sym.Kind == parse.Structure || sym.Kind == parse.Enumeration {
			return NamedType(sym.NameString())
		}
		return UnknownType()
	default:
		return UnknownType()
	}
}

// typeFromAnnotation maps a type-annotation Element (always a bare
// identifier per parse.typeRef, since this grammar has no structural
// type syntax) to the handful of built-in Types the resolver knows by
// name, falling back to Named for anything else.
func typeFromAnnotation(t parse.Element) Type {
	if t.Token == nil {
		return UnknownType()
	}
	switch t.Token.AsString {
	case "Int":
		return IntType()
	case "Float":
		return FloatType()
	case "Bool":
		return BoolType()
	case "Str":
		return StrType()
	case "Char":
		return CharType()
	case "Void":
		return VoidType()
	default:
		return NamedType(t.Token.AsString)
	}
}

// closestName finds the nearest-spelled name bound anywhere in scope,
// walking outward from scope the same way Lookup does, for the
// resolver's "did you mean" hint. Returns "" when nothing is close
// enough to be worth suggesting. A pure-Go Levenshtein distance: no
// library in the pack targets fuzzy name suggestion this narrowly, and
// the computation itself is a dozen lines of stdlib-only arithmetic.
func closestName(target string, scope *parse.Scope) string {
	best := ""
	bestDist := -1
	for cur := scope; cur != nil; cur = cur.Parent {
		for _, name := range cur.Names() {
			d := levenshtein(target, name)
			if bestDist == -1 || d < bestDist {
				bestDist, best = d, name
			}
		}
	}
	threshold := len(target)/2 + 1
	if bestDist >= 0 && bestDist <= threshold {
		return best
	}
	return ""
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
