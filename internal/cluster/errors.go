package cluster

import "errors"

// Ошибки кластера.
var (
	// ErrUnsupportedMode — неизвестный режим создания клиента.
	ErrUnsupportedMode = errors.New("unsupported client mode")

	// ErrClusterClosed — кластер уже закрыт.
	ErrClusterClosed = errors.New("cluster is closed")
)
