package materials

import "strings"

// ChunkText splits text into overlapping windows of size characters (runes),
// advancing size-overlap each step. The final window ends exactly at the end
// of the text. Windows are whitespace-trimmed and empty ones dropped.
//
// Overlap keeps concepts that span a window boundary visible in both
// neighbours; the duplicated text across adjacent chunks is a deliberate
// recall/size tradeoff.
func ChunkText(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 || size <= 0 {
		return nil
	}
	step := size - overlap
	if step <= 0 {
		step = 1
	}
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
