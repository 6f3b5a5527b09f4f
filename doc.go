// Package pinchview is a touch-driven, full-screen image viewer for
// [Ebitengine].
//
// A [Viewer] shows a horizontal strip of images. Each image lives in a
// [Container] that turns touches into pan, pinch-zoom, momentum and
// tap-to-close. Horizontal drags the container does not consume itself are
// handed to the viewer, which pages between images.
//
// # Quick start
//
//	v, err := pinchview.NewViewer(pinchview.ViewerOptions{
//		Sources:  []string{"a.jpg", "b.png", "https://example.com/c.webp"},
//		Viewport: pinchview.Viewport{ScreenWidth: 390, ScreenHeight: 844},
//		Loader:   &pinchview.Loader{Fetcher: httpClient},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := pinchview.Run(v, pinchview.RunConfig{Title: "Gallery"}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, embed the viewer in your own [ebiten.Game] and call
// [Viewer.Update], [Viewer.Draw] and [Viewer.Layout] directly.
//
// # Gestures
//
// Touch sequences are converted to start, move and end events in the manner
// of a browser: each event lists the fingers still down. One finger pans a
// zoomed image or drags the strip at fit width. A quick, still touch closes
// the viewer. Two fingers zoom about their midpoint with a zoom factor equal
// to the square root of the finger spread ratio. On release the image is
// clamped to between fit width and [Config].MaxZoom times it, and a fast
// release glides to a stop with an ease-out-quart curve.
//
// Containers never read Ebitengine input themselves, so their gesture logic
// can be driven from tests with [Container.TouchStart], [Container.TouchMove]
// and [Container.TouchEnd] and a [FrameQueue] flushed by hand.
//
// # Loading
//
// [Loader] reads local files or fetches URLs through a [Fetcher], decodes
// JPEG, PNG, GIF, BMP and WebP, applies EXIF orientation and downsizes
// images larger than the GPU texture limit. Loading runs on a goroutine and
// is applied on the next Update.
//
// # Testing and automation
//
// [Viewer.InjectTap], [Viewer.InjectDrag] and [Viewer.InjectPinch] queue
// synthetic touch frames. A [TestRunner] loaded from a JSON script replays
// them and takes screenshots with [Viewer.Screenshot].
//
// # ECS integration
//
// Set an [EventStore] with [Viewer.SetEventStore] to receive every gesture
// as a [GestureEvent]. The pinchview/ecs module provides a Donburi adapter.
//
// [Ebitengine]: https://ebitengine.org
package pinchview
