// Package mumblelink reads the MumbleLink shared memory record that voice
// chat clients publish for games and overlays.
//
// A Link attaches to the named region (creating it when the producer has not
// run yet) and copies the fixed layout record out on every Read. The record
// is decoded into an owned Record: wide character buffers become strings and
// the 256 byte game context is kept as raw bytes, to be reinterpreted by the
// caller with ReadContextAs.
//
//	link, err := mumblelink.Open(ctx)
//	if err != nil {
//		return err
//	}
//	defer link.Close()
//	rec, err := link.Read()
//	if err != nil {
//		return err
//	}
//	gw2 := mumblelink.ReadContextAs[GW2Context](&rec)
//
// Nothing here synchronizes with the producer. A read racing a write may see
// a torn record; compare UITick across reads when that matters.
package mumblelink
