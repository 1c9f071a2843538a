package store

import "github.com/yourorg/playground/pkg/types"

type Store interface {
	CreateSpec(title, version, source string, raw []byte) (*types.SpecRecord, error)
	GetSpec(id string) (*types.SpecRecord, []byte, error)
	ListSpecs() ([]types.SpecRecord, error)
	DeleteSpec(id string) error

	SaveEndpoints(specID string, configs []*types.EndpointConfig) error
	GetEndpoint(specID, key string) (*types.EndpointConfig, error)
	ListEndpoints(specID string) ([]*types.EndpointConfig, error)

	Close() error
}
