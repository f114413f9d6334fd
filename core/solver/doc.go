// Package solver defines the contract between the planning core and a generic
// integer constraint solver.
//
// A Model collects 0/1 and bounded integer variables, linear constraints,
// integer division equalities and an optional minimisation objective. A
// Solver backend consumes the model and reports a Status together with the
// value of every variable. The planning core never looks past this package,
// so backends can be swapped without touching the constraint rules.
package solver
