//go:build darwin && (!cgo || internal_pinfo_cgo_disabled)

package proc

func vnodeCurrentDir(int) (string, error) {
	return "", errUnsupported
}
