// SPDX-License-Identifier: EPL-2.0

// Package wav provides the WAV codec backend.
//
// Importing this package registers the backend for the wav and wave
// extensions and the audio/wav, audio/x-wav, and audio/wave MIME types.
//
// The decoder handles PCM WAV files at 8, 16, and 24 bits per sample,
// mono or multichannel, at any sample rate.  Unknown chunks (LIST,
// INFO, fact, ...) are skipped, including odd-size chunk padding.
// Because PCM frames occupy fixed-size byte ranges within the data
// chunk, seeking is sample accurate.
//
// The package also writes PCM WAV streams:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WritePCM16(file, 8000, 1, samples)
package wav
