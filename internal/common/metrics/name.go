package metrics

import "strings"

var nameReplacer = strings.NewReplacer(" ", "_", ".", "_", "-", "_", "=", "_", "/", "_")

// FlattenName turns a service or host name into a valid prometheus name fragment.
func FlattenName(name string) string {
	return nameReplacer.Replace(name)
}

func BuildFQName(names ...string) string {
	return FlattenName(strings.Join(names, "_"))
}
