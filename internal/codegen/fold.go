package codegen

import "github.com/hgoncalo/pascalsvm/internal/semantic"

func foldArith(op string, lv any, lt *semantic.Type, rv any, rt *semantic.Type) (any, *semantic.Type, bool) {
	if op == "div" || op == "mod" {
		if lt.Kind != semantic.KInteger || rt.Kind != semantic.KInteger {
			return nil, nil, false
		}
		l, r := lv.(int), rv.(int)
		if r == 0 {
			return nil, nil, false
		}
		if op == "div" {
			return l / r, semantic.Integer, true
		}
		return l % r, semantic.Integer, true
	}

	result := semantic.ResultType(lt, rt)
	if result.Kind == semantic.KReal {
		l, r := asFloat(lv), asFloat(rv)
		switch op {
		case "+":
			return l + r, semantic.Real, true
		case "-":
			return l - r, semantic.Real, true
		case "*":
			return l * r, semantic.Real, true
		case "/":
			if r == 0 {
				return nil, nil, false
			}
			return l / r, semantic.Real, true
		}
		return nil, nil, false
	}

	l, r := lv.(int), rv.(int)
	switch op {
	case "+":
		return l + r, semantic.Integer, true
	case "-":
		return l - r, semantic.Integer, true
	case "*":
		return l * r, semantic.Integer, true
	case "/":
		if r == 0 {
			return nil, nil, false
		}
		return float64(l) / float64(r), semantic.Real, true
	}
	return nil, nil, false
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
