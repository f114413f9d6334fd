package solver

// Term is coef * var.
type Term struct {
	Var  Var
	Coef int64
}

// LinearExpr is Σ terms + Constant.
type LinearExpr struct {
	Terms    []Term
	Constant int64
}

// Sum returns the expression v1 + v2 + ... .
func Sum(vars ...Var) LinearExpr {
	e := LinearExpr{Terms: make([]Term, 0, len(vars))}
	for _, v := range vars {
		e.Terms = append(e.Terms, Term{Var: v, Coef: 1})
	}
	return e
}

// WeightedSum returns Σ coefs[i] * vars[i]. Both slices must have the same length.
func WeightedSum(vars []Var, coefs []int64) LinearExpr {
	e := LinearExpr{Terms: make([]Term, 0, len(vars))}
	for i, v := range vars {
		e.Terms = append(e.Terms, Term{Var: v, Coef: coefs[i]})
	}
	return e
}

// Add returns e + coef*v.
func (e LinearExpr) Add(v Var, coef int64) LinearExpr {
	out := e.clone()
	out.Terms = append(out.Terms, Term{Var: v, Coef: coef})
	return out
}

// Plus returns e + o.
func (e LinearExpr) Plus(o LinearExpr) LinearExpr {
	out := e.clone()
	out.Terms = append(out.Terms, o.Terms...)
	out.Constant += o.Constant
	return out
}

// Scale returns k * e.
func (e LinearExpr) Scale(k int64) LinearExpr {
	out := LinearExpr{Terms: make([]Term, len(e.Terms)), Constant: e.Constant * k}
	for i, t := range e.Terms {
		out.Terms[i] = Term{Var: t.Var, Coef: t.Coef * k}
	}
	return out
}

// Minus returns e - o.
func (e LinearExpr) Minus(o LinearExpr) LinearExpr { return e.Plus(o.Scale(-1)) }

// Eval evaluates the expression against per-variable values.
func (e LinearExpr) Eval(values []int64) int64 {
	s := e.Constant
	for _, t := range e.Terms {
		s += t.Coef * values[t.Var]
	}
	return s
}

func (e LinearExpr) clone() LinearExpr {
	out := LinearExpr{Terms: make([]Term, len(e.Terms), len(e.Terms)+1), Constant: e.Constant}
	copy(out.Terms, e.Terms)
	return out
}
