// Package winnersengine determines exhibition award winners from jury scores.
//
// It aggregates per-project jury averages, resolves each nomination to an
// explicit outcome, parks tied previews in a transient per-operator store, and
// commits winner records in one transactional replace. The module keeps
// domain/application logic decoupled from runtime/platform concerns through
// ports and adapter composition.
package winnersengine
