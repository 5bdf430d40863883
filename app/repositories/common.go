package repositories

import (
	"encoding/json"
	"fmt"
	"sort"

	"yatube/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix    = "user:"
	GroupKeyPrefix   = "group:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
	FollowKeyPrefix  = "follow:"

	// Unique lookups, value is the big-endian id
	UsernameKeyPrefix = "username:"
	SlugKeyPrefix     = "slug:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey    = "seq:user"
	GroupSeqKey   = "seq:group"
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
	FollowSeqKey  = "seq:follow"
)

func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

func encodeID(id int) []byte {
	return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func decodeID(val []byte) int {
	return int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	if err := txn.Set([]byte(seqKey), encodeID(id)); err != nil {
		return 0, err
	}

	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal entity")
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return errors.Wrap(err, "failed to unmarshal entity")
	}
	return nil
}

// getEntity loads the value at key into entity.
func getEntity(txn *badger.Txn, key []byte, entity interface{}) error {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, entity)
	})
}

// lookupID resolves a unique index key to the id it points at.
func lookupID(txn *badger.Txn, key []byte) (int, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	var id int
	err = item.Value(func(val []byte) error {
		id = decodeID(val)
		return nil
	})
	return id, err
}

// deleteExisting removes key, or returns ErrNotFound if it is absent.
func deleteExisting(txn *badger.Txn, key []byte) error {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return txn.Delete(key)
}

// scanPrefix decodes every value under prefix, keeping those accepted by keep.
func scanPrefix[T any](txn *badger.Txn, prefix string, keep func(*T) bool) ([]*T, error) {
	var out []*T
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		entity := new(T)
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, entity)
		})
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(entity) {
			out = append(out, entity)
		}
	}
	return out, nil
}

// SortPostsNewestFirst orders by creation time, then id, both descending.
func SortPostsNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

// SortCommentsOldestFirst orders by creation time, then id, both ascending.
func SortCommentsOldestFirst(comments []*models.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
}

// MatchPost reports whether post passes filter.
func MatchPost(post *models.Post, filter PostFilter) bool {
	if filter.AuthorID != 0 && post.AuthorID != filter.AuthorID {
		return false
	}
	if filter.GroupID != 0 && !post.InGroup(filter.GroupID) {
		return false
	}
	if filter.ByAuthors {
		found := false
		for _, id := range filter.AuthorIDs {
			if id == post.AuthorID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchComment reports whether comment passes filter.
func MatchComment(comment *models.Comment, filter CommentFilter) bool {
	if filter.PostID != 0 && comment.PostID != filter.PostID {
		return false
	}
	if filter.AuthorID != 0 && comment.AuthorID != filter.AuthorID {
		return false
	}
	return true
}

// MatchFollow reports whether follow passes filter.
func MatchFollow(follow *models.Follow, filter FollowFilter) bool {
	if filter.UserID != 0 && follow.UserID != filter.UserID {
		return false
	}
	if filter.AuthorID != 0 && follow.AuthorID != filter.AuthorID {
		return false
	}
	return true
}
