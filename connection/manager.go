package connection

import (
	"sync"

	"bankgo/utils"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
)

var ErrNoConnection = errors.Errorf("connection: no rpc configured")

type Manager struct {
	configs        map[string]*Config
	rpcConnections map[string][]RpcClient
	mxState        *sync.Mutex
}

func CreateManager() *Manager {
	return &Manager{
		configs:        make(map[string]*Config),
		rpcConnections: make(map[string][]RpcClient),
		mxState:        new(sync.Mutex),
	}
}

// AddConfig registers config under id, or under its hash when id is empty,
// and returns the id used.
func (p *Manager) AddConfig(config Config, id ...string) string {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	connectionId := config.Hash()
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	if _, exists := p.configs[connectionId]; !exists {
		p.configs[connectionId] = &config
	}
	return connectionId
}

// AddRpc registers an already built client under id.
func (p *Manager) AddRpc(id string, client RpcClient) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	if _, exists := p.configs[id]; !exists {
		p.configs[id] = &Config{MaxReferrer: 1}
	}
	p.rpcConnections[id] = append(p.rpcConnections[id], client)
}

func (p *Manager) getConnectionId(id ...string) (string, error) {
	var connectionId string
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	if _, exists := p.configs[connectionId]; exists {
		return connectionId, nil
	}
	connectionIds := utils.MapKeys(p.configs)
	if len(connectionIds) == 0 {
		return "", ErrNoConnection
	}
	return utils.RandomElement(connectionIds), nil
}

// GetRpc returns a client for id, or for a random config when id is unknown.
// New clients are created until MaxReferrer clients exist for the config.
func (p *Manager) GetRpc(id ...string) (RpcClient, error) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	connectionId, err := p.getConnectionId(id...)
	if err != nil {
		return nil, err
	}
	config := p.configs[connectionId]
	connections := p.rpcConnections[connectionId]
	if len(connections) == 0 || (config.MaxReferrer > 0 && len(connections) < config.MaxReferrer) {
		if config.Endpoint == "" && config.Host == "" {
			return nil, errors.Errorf("connection %s has no endpoint", connectionId)
		}
		connection := p.CreateRpc(config)
		p.rpcConnections[connectionId] = append(connections, connection)
		return connection, nil
	}
	return utils.RandomElement(connections), nil
}

func (p *Manager) CreateRpc(config *Config) RpcClient {
	return rpc.New(config.GetRpcEndpoint())
}
