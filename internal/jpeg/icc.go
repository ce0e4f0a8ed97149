package jpeg

import (
	"bytes"
	"fmt"
	"sort"
)

const iccMarkerTag = "ICC_PROFILE\x00"

// ExtractICC reassembles an ICC profile from APP2 marker segments.
// markers is a slice of raw APP2 marker payloads (excluding the marker and
// length bytes). Non-ICC APP2 segments are ignored. Returns nil, nil when no
// profile is present.
func ExtractICC(markers [][]byte) ([]byte, error) {
	type chunk struct {
		seq  int
		data []byte
	}
	var chunks []chunk
	expectedCount := 0

	for _, m := range markers {
		if len(m) < 14 || string(m[:12]) != iccMarkerTag {
			continue
		}
		seq := int(m[12])
		count := int(m[13])
		if seq == 0 || seq > count {
			return nil, fmt.Errorf("invalid ICC chunk sequence %d/%d", seq, count)
		}
		if expectedCount == 0 {
			expectedCount = count
		} else if count != expectedCount {
			return nil, fmt.Errorf("inconsistent ICC chunk count: %d vs %d", count, expectedCount)
		}
		chunks = append(chunks, chunk{seq: seq, data: m[14:]})
	}

	if len(chunks) == 0 {
		return nil, nil
	}
	if len(chunks) != expectedCount {
		return nil, fmt.Errorf("expected %d ICC chunks, found %d", expectedCount, len(chunks))
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].seq < chunks[j].seq })
	for i, c := range chunks {
		if c.seq != i+1 {
			return nil, fmt.Errorf("duplicate ICC chunk %d", c.seq)
		}
	}

	var buf bytes.Buffer
	for _, c := range chunks {
		buf.Write(c.data)
	}
	return buf.Bytes(), nil
}
