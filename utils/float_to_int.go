package utils

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// AppendFloat32ToInt16 converts a block of float32 samples and appends
// the result to dst, growing it as needed.
func AppendFloat32ToInt16(dst []int16, src []float32) []int16 {
	if n := len(dst) + len(src); cap(dst) < n {
		grown := make([]int16, len(dst), n)
		copy(grown, dst)
		dst = grown
	}
	for _, x := range src {
		dst = append(dst, Float32ToInt16(x))
	}
	return dst
}
