// Package particlewav reads, rewrites, and re-emits RIFF/WAVE audio files.
//
// A File is populated from a complete in-memory file image. Sample data in
// 8/16/24/32-bit PCM or 32-bit IEEE float layouts is normalized to float64
// tracks, and auxiliary metadata is collected along the way: sampler loop
// points, LIST/INFO entries, ID3v2.3 frames, instrument settings, and DISP
// images. Re-encoding always produces PCM at a chosen bit depth, re-framing
// surviving loop points and INFO entries around the re-quantized samples.
//
// Chunk parsing is tolerant by design: unknown chunk ids are skipped, loop
// points that fall outside the sample data are dropped, and a truncated data
// chunk decodes to silence past its end. Only a damaged RIFF envelope, fmt
// chunk, or data chunk fails a load.
package particlewav
