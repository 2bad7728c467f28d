package catchdb

import (
	"sort"
	"strconv"
	"strings"
)

// Category groups commands by the server structure they operate on.
type Category string

const (
	CategoryKV      Category = "kv"
	CategoryHashMap Category = "hashmap"
	CategoryZSet    Category = "zset"
	CategoryQueue   Category = "queue"
)

// Property tells whether a command modifies server state.
type Property string

const (
	PropertyRead  Property = "read"
	PropertyWrite Property = "write"
)

// CommandInfo describes one server command.
type CommandInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	// Arity is the number of blocks including the command name. A negative
	// arity -n means at least n blocks.
	Arity       int      `json:"arity" yaml:"arity"`
	Property    Property `json:"property" yaml:"property"`
	Usage       string   `json:"usage" yaml:"usage"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// AcceptsArgs reports whether n blocks (name included) satisfy the arity.
func (ci CommandInfo) AcceptsArgs(n int) bool {
	if ci.Arity < 0 {
		return n >= -ci.Arity
	}
	return n == ci.Arity
}

// Help returns the usage line followed by the description, if any.
func (ci CommandInfo) Help() string {
	if ci.Description == "" {
		return ci.Usage
	}
	return ci.Usage + "\nDESCRIPTION: " + ci.Description
}

var commandTable = map[string]CommandInfo{}

func register(cat Category, prop Property, arity int, usage, desc string) {
	name, _, _ := strings.Cut(usage, " ")
	commandTable[name] = CommandInfo{
		Name:        name,
		Category:    cat,
		Arity:       arity,
		Property:    prop,
		Usage:       usage,
		Description: desc,
	}
}

func init() {
	const r, w = PropertyRead, PropertyWrite

	register(CategoryKV, r, 2, "get key", "")
	register(CategoryKV, r, 1, "getall", "get all key-value pairs")
	register(CategoryKV, w, 3, "set key value", "")
	register(CategoryKV, w, 4, "setx key value ttl", "set a key that expires after ttl seconds")
	register(CategoryKV, w, 3, "setnx key value", "set a key only if it does not exist")
	register(CategoryKV, w, 3, "getset key value", "set a key and return its old value")
	register(CategoryKV, w, 2, "del key", "")
	register(CategoryKV, w, 3, "incr key num", "")
	register(CategoryKV, w, 3, "decr key num", "")
	register(CategoryKV, r, 4, "scan begin end limit", "list key-value pairs in (begin, end]")
	register(CategoryKV, r, 4, "rscan begin end limit", "like scan, in reverse order")
	register(CategoryKV, r, 1, "keys", "")
	register(CategoryKV, r, 2, "exists key", "")
	register(CategoryKV, w, -3, "multi_set key value ...", "")

	register(CategoryHashMap, r, 2, "hsize name", "")
	register(CategoryHashMap, r, 3, "hget name key", "")
	register(CategoryHashMap, w, 4, "hset name key value", "")
	register(CategoryHashMap, w, 3, "hdel name key", "")
	register(CategoryHashMap, w, 4, "hincr name key num", "")
	register(CategoryHashMap, w, 3, "hdecr name key", "")
	register(CategoryHashMap, w, 2, "hclear name", "")
	register(CategoryHashMap, r, 2, "hgetall name", "")
	register(CategoryHashMap, r, 5, "hscan name begin end limit", "")
	register(CategoryHashMap, r, 5, "hrscan name begin end limit", "")
	register(CategoryHashMap, r, 2, "hkeys name", "")
	register(CategoryHashMap, r, 3, "hvals name limit", "")
	register(CategoryHashMap, r, 4, "hlist begin end limit", "")
	register(CategoryHashMap, r, 3, "hexists name key", "")
	register(CategoryHashMap, w, -3, "multi_hset name key value ...", "")

	register(CategoryZSet, w, 4, "zset name key score", "")
	register(CategoryZSet, r, 3, "zget name key", "")
	register(CategoryZSet, r, 2, "zsize name", "")
	register(CategoryZSet, w, 3, "zdel name key", "")
	register(CategoryZSet, r, 3, "ztopn name num", "get top n key-score pairs with highest score")
	register(CategoryZSet, r, 2, "zgetall name", `get all key-score pairs of zset "name"`)
	register(CategoryZSet, w, 4, "zincr name key num", "")
	register(CategoryZSet, w, 4, "zdecr name key num", "")
	register(CategoryZSet, w, 2, "zclear name", "")
	register(CategoryZSet, r, 6, "zscan name key_start score_start score_end limit", "")
	register(CategoryZSet, r, 6, "zrscan name key_start score_start score_end limit", "")
	register(CategoryZSet, r, 6, "zkeys name key_start score_start score_end limit", "")
	register(CategoryZSet, r, 4, "zlist name_start name_end limit", "")
	register(CategoryZSet, r, 4, "zcount name score_start score_end", "")
	register(CategoryZSet, r, 4, "zsum name score_start score_end", "")
	register(CategoryZSet, r, 4, "zavg name score_start score_end", "")
	register(CategoryZSet, r, 4, "zremrangebyrank name start end", "")
	register(CategoryZSet, r, 4, "zremrangebyscore name start end", "")
	register(CategoryZSet, r, 3, "zexists name key", "")
	register(CategoryZSet, w, 4, "zmod name key score", "")
	register(CategoryZSet, r, -3, "multi_zexists name key ...", "")
	register(CategoryZSet, r, -3, "multi_zsize name ...", "")
	register(CategoryZSet, r, -3, "multi_zget name key ...", "")
	register(CategoryZSet, r, -3, "multi_zset name key score ...", "")
	register(CategoryZSet, r, -3, "multi_zdel name key ...", "")

	register(CategoryQueue, r, 2, "qsize name", "")
	register(CategoryQueue, r, 2, "qfront name", "")
	register(CategoryQueue, r, 2, "qback name", "")
	register(CategoryQueue, w, 3, "qpush name item", "same as qpush_front")
	register(CategoryQueue, w, 3, "qpush_front name item", "")
	register(CategoryQueue, w, 3, "qpush_back name item", "")
	register(CategoryQueue, w, 2, "qpop name", "same as qpop_back")
	register(CategoryQueue, w, 2, "qpop_front name", "")
	register(CategoryQueue, w, 2, "qpop_back name", "")
	register(CategoryQueue, w, 2, "qclear name", "")
	register(CategoryQueue, r, 2, "qlist name", "")
	register(CategoryQueue, r, 4, "qslice name begin end", "")
	register(CategoryQueue, r, 3, "qrange name limit", "")
	register(CategoryQueue, r, 3, "qget name index", "")
}

// LookupCommand returns the table entry for name.
func LookupCommand(name string) (CommandInfo, bool) {
	ci, ok := commandTable[name]
	return ci, ok
}

// Commands returns all known commands sorted by category, then name.
func Commands() []CommandInfo {
	out := make([]CommandInfo, 0, len(commandTable))
	for _, ci := range commandTable {
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ValidateArgs checks args (name first) against the command table.
func ValidateArgs(args []string) error {
	if len(args) == 0 || args[0] == "" {
		return ErrEmptyCommand
	}
	ci, ok := LookupCommand(args[0])
	if !ok {
		return ErrUnknownCommand.WithDetails(args[0])
	}
	if !ci.AcceptsArgs(len(args)) {
		return ErrWrongArity.WithDetails(ci.Usage + " (got " + strconv.Itoa(len(args)-1) + " arguments)")
	}
	return nil
}
