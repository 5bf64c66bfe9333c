//go:build cuda

package backend

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -lcudart
#include <cuda_runtime_api.h>

static int cuda_device_count() {
	int n = 0;
	if (cudaGetDeviceCount(&n) != cudaSuccess) {
		return 0;
	}
	return n;
}
*/
import "C"

func cudaDeviceCount() int {
	return int(C.cuda_device_count())
}
