package media

// Chunk is one bounded-duration slice of an audio stream. Chunks exist only
// transiently during long-audio transcription.
type Chunk struct {
	Index  int
	Offset float64 // seconds from stream start
	Length float64 // seconds, at most the nominal chunk size
}

// Chunks splits a total duration into consecutive fixed-size chunks covering
// the whole stream in temporal order with no gaps and no overlap. Only the
// final chunk may be shorter than chunkSeconds. A non-positive duration
// yields no chunks.
func Chunks(duration, chunkSeconds float64) []Chunk {
	if duration <= 0 {
		return nil
	}
	if chunkSeconds <= 0 {
		return []Chunk{{Index: 0, Offset: 0, Length: duration}}
	}

	var chunks []Chunk
	for offset := 0.0; offset < duration; offset += chunkSeconds {
		length := chunkSeconds
		if remaining := duration - offset; remaining < length {
			length = remaining
		}
		chunks = append(chunks, Chunk{
			Index:  len(chunks),
			Offset: offset,
			Length: length,
		})
	}

	return chunks
}
