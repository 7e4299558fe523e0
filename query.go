package custody

import "fmt"

// Query modes. The default mode looks up one key, the prefix mode returns
// every record whose key starts with the query data.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is one key value pair of a query result.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries. The context carries the height and
// time of the last committed block, so a time dependent query needs no
// transaction.
type QueryHandler interface {
	Query(ctx Context, db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds handlers to a router.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths to handlers, in the manner of
// http.ServeMux.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics when path is already taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
