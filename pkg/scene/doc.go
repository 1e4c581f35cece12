// Package scene builds visual-element hierarchies from parsed design trees.
//
// The hierarchy builder walks a [document.Node] tree in depth-first pre-order
// and asks an injected [Environment] to create one visual element per node,
// attach it to its parent, and — for image nodes with a source — schedule a
// best-effort content fill. The builder itself never renders anything and
// never touches a concrete runtime API; every point of contact with the host
// environment goes through the Environment capability interface.
//
// Coordinate conversion from design space (top-left origin, Y down) to the
// target environment's convention is pluggable via [Convention]. The default,
// [YUpCentered], negates Y for engines that use a Y-up, center-anchored space.
//
// Element creation failures abort the failing subtree and surface as an
// [ElementCreationFailedError]; siblings already attached are not rolled back.
// The builder offers no transactional guarantee. Image fills are
// fire-and-forget and their failures never reach the builder's return path.
package scene
