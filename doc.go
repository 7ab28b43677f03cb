// Package vpath implements the geometry kernel of an editable vector path:
// anchor points with tangent handles, their flattening into vertex streams,
// and hit testing and bounds computation on those streams.
//
// # Anchor points and sequences
//
// A path is described by a [Sequence] of [AnchorPoint] values. Each point has
// a position, up to two tangent handles, and two shoulder lengths used by
// styled corners. Its [AnchorType] determines which handles are derived from
// the point's neighbours rather than set by the user. In order of priority:
//
//   - [Connector] points keep their handles aligned with the adjacent
//     straight segments.
//   - Points with AutoHandles set get handles tangent to the circle through
//     their neighbours and themselves.
//   - [Symmetric] points keep their handles collinear, and [Mirror] points
//     additionally keep them of equal length. The most recently edited
//     handle leads.
//   - All other points keep their handles as they were set.
//
// Sequences own their points. All changes go through [Sequence.Insert],
// [Sequence.Remove], [Sequence.Update] and [Sequence.SetClosed], which
// recompute the derived handles of the changed point and its neighbours
// immediately.
//
// # Vertex streams
//
// [GenerateVertices] flattens a sequence into a stream of [Vertex] values,
// consisting of moves, lines, quadratic and cubic Béziers, and closes. Curves
// span several vertices sharing the same [VertexCommand], the end point
// first. Streams are consumed through the [VertexSource] interface, which
// [VertexBuffer] and [Path] implement. A Path caches its generated vertices
// and regenerates them once its sequence or transform has changed.
//
// When generating styled vertices, anchors of the corner types ([Rounded],
// [InverseRounded], [Bevel], [Inset], [Fancy]) have their corners cut at the
// shoulder points and filled in according to their type.
//
// # Queries
//
// [HitTest] tests a point against the outline of a vertex stream, and
// optionally against its fill. [Bounds] computes the bounding box of a vertex
// stream, either exactly or from control points.
//
// Vertex streams may come from outside the package. Queries fail with an
// [*UnknownCommandError] when they encounter a vertex command they don't
// know.
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [A Rasterizing Algorithm for Drawing Curves] by Alois Zingl
//   - [Inclusion Test for Curved-Edge Polygons] by Ruiz de Miras and Feito
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [A Rasterizing Algorithm for Drawing Curves]: http://members.chello.at/easyfilter/Bresenham.pdf
// [Inclusion Test for Curved-Edge Polygons]: https://doi.org/10.1016/S0097-8493(97)00048-7
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
package vpath
