package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assetOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keepsake",
		Name:      "asset_operations_total",
		Help:      "Asset store/delete operations by storage backend and result.",
	}, []string{"op", "storage", "result"})

	assetBytesStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keepsake",
		Name:      "asset_bytes_stored_total",
		Help:      "Bytes written to the storage backend.",
	}, []string{"storage"})

	defaultLetterCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "keepsake",
		Name:      "default_letter_created_total",
		Help:      "Default letters synthesized on first access.",
	})
)
