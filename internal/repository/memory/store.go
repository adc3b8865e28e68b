package memory

import (
	"github.com/patrickmn/go-cache"
)

// Store holds one non-expiring cache per collection. The deployment has no
// persistence layer; the server's collections live for the process lifetime.
type Store struct {
	teams       *cache.Cache
	members     *cache.Cache
	meetings    *cache.Cache
	patients    *cache.Cache
	attachments *cache.Cache
	responses   *cache.Cache
	outbox      *cache.Cache
}

func NewStore() *Store {
	return &Store{
		teams:       cache.New(cache.NoExpiration, 0),
		members:     cache.New(cache.NoExpiration, 0),
		meetings:    cache.New(cache.NoExpiration, 0),
		patients:    cache.New(cache.NoExpiration, 0),
		attachments: cache.New(cache.NoExpiration, 0),
		responses:   cache.New(cache.NoExpiration, 0),
		outbox:      cache.New(cache.NoExpiration, 0),
	}
}
