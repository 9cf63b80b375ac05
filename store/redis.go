package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goFed "github.com/MrEthical07/goFed"
)

// Redis is a [goFed.UserStore] backed by a Redis hash per user plus an
// email index key.
//
// Key layout:
//
//	<prefix>:user:<id>      hash: name, email, refresh, perms, roles
//	<prefix>:email:<email>  string: user id
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps the given client. An empty prefix defaults to "gf".
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "gf"
	}
	return &Redis{client: client, prefix: prefix}
}

func (s *Redis) userKey(id string) string {
	return s.prefix + ":user:" + id
}

func (s *Redis) emailKey(email string) string {
	return s.prefix + ":email:" + email
}

// createUserScript claims the email index and writes the user hash in one
// step. If the email is already claimed it returns the existing owner's id,
// so racing first logins converge on a single account.
const createUserScript = `
local existing = redis.call("GET", KEYS[1])
if existing then
  return existing
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("HSET", KEYS[2], "name", ARGV[2], "email", ARGV[3], "perms", ARGV[4], "roles", ARGV[5])
return ARGV[1]
`

var createUserLua = redis.NewScript(createUserScript)

// saveRefreshScript writes (or clears, when ARGV[1] is empty) the refresh
// field only when the user hash exists.
const saveRefreshScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
if ARGV[1] == "" then
  redis.call("HDEL", KEYS[1], "refresh")
else
  redis.call("HSET", KEYS[1], "refresh", ARGV[1])
end
return 1
`

var saveRefreshLua = redis.NewScript(saveRefreshScript)

// matchRefreshScript returns the full user hash only when the stored refresh
// field equals the presented token. A missing user, a cleared field, and a
// mismatch are indistinguishable on purpose.
const matchRefreshScript = `
local stored = redis.call("HGET", KEYS[1], "refresh")
if not stored or stored == "" or stored ~= ARGV[1] then
  return false
end
return redis.call("HGETALL", KEYS[1])
`

var matchRefreshLua = redis.NewScript(matchRefreshScript)

// GetByID loads a user record. Absent users map to [goFed.ErrUserNotFound].
func (s *Redis) GetByID(ctx context.Context, userID string) (goFed.UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, s.userKey(userID)).Result()
	if err != nil {
		return goFed.UserRecord{}, err
	}
	if len(fields) == 0 {
		return goFed.UserRecord{}, goFed.ErrUserNotFound
	}
	return recordFromFields(userID, fields)
}

// FindByEmail resolves the email index and loads the record. Absence is
// reported through the found flag, never as an error.
func (s *Redis) FindByEmail(ctx context.Context, email string) (goFed.UserRecord, bool, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return goFed.UserRecord{}, false, nil
	}
	if err != nil {
		return goFed.UserRecord{}, false, err
	}

	user, err := s.GetByID(ctx, id)
	if errors.Is(err, goFed.ErrUserNotFound) {
		// Stale index entry; treat as absent.
		return goFed.UserRecord{}, false, nil
	}
	if err != nil {
		return goFed.UserRecord{}, false, err
	}
	return user, true, nil
}

// Create registers a new user under a fresh UUID. When another writer
// claimed the email first, the established record is returned instead.
func (s *Redis) Create(ctx context.Context, name, email string) (goFed.UserRecord, error) {
	id := uuid.NewString()

	perms, err := json.Marshal([]int{})
	if err != nil {
		return goFed.UserRecord{}, err
	}

	winner, err := createUserLua.Run(ctx, s.client,
		[]string{s.emailKey(email), s.userKey(id)},
		id, name, email, string(perms), string(perms),
	).Text()
	if err != nil {
		return goFed.UserRecord{}, err
	}

	if winner != id {
		return s.GetByID(ctx, winner)
	}

	return goFed.UserRecord{ID: id, Name: name, Email: email, Permissions: []int{}, Roles: []int{}}, nil
}

// SaveRefreshToken replaces the stored refresh token. An empty token clears
// it. Saving against an absent user returns [goFed.ErrUserNotFound].
func (s *Redis) SaveRefreshToken(ctx context.Context, userID, token string) error {
	ok, err := saveRefreshLua.Run(ctx, s.client, []string{s.userKey(userID)}, token).Int64()
	if err != nil {
		return err
	}
	if ok == 0 {
		return goFed.ErrUserNotFound
	}
	return nil
}

// GetIfRefreshTokenMatches returns the user only when token equals the
// stored refresh value. Every other outcome is [goFed.ErrUserNotFound].
func (s *Redis) GetIfRefreshTokenMatches(ctx context.Context, userID, token string) (goFed.UserRecord, error) {
	if token == "" {
		return goFed.UserRecord{}, goFed.ErrUserNotFound
	}

	res, err := matchRefreshLua.Run(ctx, s.client, []string{s.userKey(userID)}, token).Result()
	if errors.Is(err, redis.Nil) {
		return goFed.UserRecord{}, goFed.ErrUserNotFound
	}
	if err != nil {
		return goFed.UserRecord{}, err
	}

	pairs, ok := res.([]interface{})
	if !ok || len(pairs) == 0 {
		return goFed.UserRecord{}, goFed.ErrUserNotFound
	}

	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		k, _ := pairs[i].(string)
		v, _ := pairs[i+1].(string)
		fields[k] = v
	}

	return recordFromFields(userID, fields)
}

func recordFromFields(userID string, fields map[string]string) (goFed.UserRecord, error) {
	user := goFed.UserRecord{
		ID:           userID,
		Name:         fields["name"],
		Email:        fields["email"],
		RefreshToken: fields["refresh"],
	}

	if raw := fields["perms"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &user.Permissions); err != nil {
			return goFed.UserRecord{}, err
		}
	}
	if raw := fields["roles"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &user.Roles); err != nil {
			return goFed.UserRecord{}, err
		}
	}

	return user, nil
}
