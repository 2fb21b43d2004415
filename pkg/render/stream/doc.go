// Package stream serializes frames for renderers running in another process.
//
// A [Sink] writes one record per repaint, either as newline-delimited JSON
// or as consecutive MessagePack values. Colors travel as "#RRGGBBAA" strings
// so the records decode without knowing Go's color types. A [Decoder] reads
// the same stream back into [render.Frame] values.
//
//	sink, _ := stream.NewSink(conn, stream.MsgPack)
//	s, _ := scene.New(scene.Options{Bounds: r, Sink: sink})
package stream
