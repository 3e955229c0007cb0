package ui

// Sparkline renders samples as Unicode block characters. The output is
// exactly width runes wide: the last width samples, left-padded with the
// lowest block. Values are normalized to the largest shown sample.
func Sparkline(data []uint64, width int) string {
	if width <= 0 {
		return ""
	}

	blocks := []rune("▁▂▃▄▅▆▇█")

	samples := make([]uint64, width)
	if len(data) >= width {
		copy(samples, data[len(data)-width:])
	} else {
		copy(samples[width-len(data):], data)
	}

	var maxVal uint64
	for _, v := range samples {
		maxVal = max(maxVal, v)
	}

	out := make([]rune, width)
	for i, v := range samples {
		if maxVal == 0 || v == 0 {
			out[i] = blocks[0]
			continue
		}
		idx := int(float64(v) / float64(maxVal) * float64(len(blocks)-1))
		out[i] = blocks[min(idx, len(blocks)-1)]
	}
	return string(out)
}
