//go:build !cuda

package backend

func cudaDeviceCount() int { return 0 }
