// Package block implements the diagram entities that live on a scene: the
// titled [Block] and the zero-footprint [Connector] used to route wires
// around a bend.
//
// # Overview
//
// Both entity kinds share one core: an identifier, a position, a size
// computed by [geometry.Compute], ordered input and output [Port] values,
// a selection flag, a color [Mode] and a z-order. They differ in how they
// are drawn and in the region that reacts to the pointer:
//
//   - A Block is a rounded rectangle with a centered title below it. Its
//     height grows to fit its ports and never drops below the default.
//   - A Connector has exactly one input and one output, no title and no
//     fill. Its interaction region is padded around the socket pair so the
//     small target stays clickable, and it starts out selected.
//
// # Capabilities
//
// Entities are used through two capability sets: [Interactive] (position,
// selection, hit region, movement) and [Drawable] (render tokens, color mode,
// deferred title layout). [Entity] is their union; both *Block and
// *Connector implement it.
//
// # Movement
//
// [Block.Move] never reaches for a global scene. The caller passes a [Stage]
// which provides the canvas constraints and is told after the position
// changed, so it can resynchronize the attached wires:
//
//	pos := b.Move(target, stage) // snap, clamp, set, stage.Moved(b, from)
//
// # Deferred Title Layout
//
// [Block.SetTitle] only records the text and marks the entity dirty. The
// title position is recomputed by [Block.Layout], which the scene calls
// before producing a frame.
package block
