// Package behavior provides the force generators attached to bodies.
//
// The set is closed: [ConstantForce], [Gravitation], [Wander], [EdgeBounce],
// [EdgeWrap] and [Drag]. Each is dispatched through [body.Behavior] and can
// be built by name from a [Spec] with [FromSpec].
//
// Parameters are providers rather than plain values so a behavior can track
// live state, for example a gravitation well following the pointer:
//
//	g := behavior.NewGravitation(eng.Pointer, behavior.Const(200), behavior.Const(20))
//
// Every behavior is total: a non-positive dt never divides, it only skips
// the dt-dependent part of the update.
package behavior
