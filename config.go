package axo

import "fmt"

// Config is a small typed key/value store for compiler toggles: each
// key is assigned a type on first write and panics on a later write of
// a different type.
type Config map[string]*cfgVal

// NewConfig returns a Config primed with the defaults this compiler
// pipeline expects.
func NewConfig() *Config {
	c := make(Config)
	c.SetBool("scanner.capture_comments", true)
	c.SetBool("parser.capture_spacing", false)
	c.SetInt("parser.recursion_limit", 512)
	c.SetBool("resolver.suggest_on_undefined", true)
	return &c
}

type cfgValType int

const (
	cfgUndefined cfgValType = iota
	cfgBool
	cfgInt
	cfgString
)

func (t cfgValType) String() string {
	switch t {
	case cfgBool:
		return "bool"
	case cfgInt:
		return "int"
	case cfgString:
		return "string"
	default:
		return "undefined"
	}
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

func (v *cfgVal) assignType(t cfgValType) {
	if v.typ != t && v.typ != cfgUndefined {
		panic(fmt.Sprintf("axo: cannot assign %s to %s config value", t, v.typ))
	}
	v.typ = t
}

func (v *cfgVal) checkType(t cfgValType) {
	if v.typ != t {
		panic(fmt.Sprintf("axo: cannot read %s from %s config value", t, v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	val, ok := (*c)[path]
	if !ok {
		val = &cfgVal{}
		(*c)[path] = val
	}
	val.assignType(cfgBool)
	val.asBool = v
}

func (c *Config) SetInt(path string, v int) {
	val, ok := (*c)[path]
	if !ok {
		val = &cfgVal{}
		(*c)[path] = val
	}
	val.assignType(cfgInt)
	val.asInt = v
}

func (c *Config) SetString(path string, v string) {
	val, ok := (*c)[path]
	if !ok {
		val = &cfgVal{}
		(*c)[path] = val
	}
	val.assignType(cfgString)
	val.asString = v
}

func (c *Config) GetBool(path string) bool {
	if v, ok := (*c)[path]; ok {
		v.checkType(cfgBool)
		return v.asBool
	}
	panic(fmt.Sprintf("axo: bool config %q does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if v, ok := (*c)[path]; ok {
		v.checkType(cfgInt)
		return v.asInt
	}
	panic(fmt.Sprintf("axo: int config %q does not exist", path))
}

func (c *Config) GetString(path string) string {
	if v, ok := (*c)[path]; ok {
		v.checkType(cfgString)
		return v.asString
	}
	panic(fmt.Sprintf("axo: string config %q does not exist", path))
}
