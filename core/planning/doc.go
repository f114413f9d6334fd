// Package planning turns employees and duties into a constraint model, solves
// it through a solver.Solver and checks candidate rosters against the same
// labour rules.
//
// A Planner owns one run: data is added, rules are registered as RuleSpec
// values, Setup builds the decision Matrix and applies every Rule in
// registration order, and Solve returns the ordered assignments with a Status.
// A Validator runs the rules' Validate side alone, without any solver, and is
// used both after solving and for rosters coming from elsewhere.
package planning
