// Package tags 负责挑选需要遍历的发布标签。
package tags

import (
	"context"
	"errors"

	"locplot/internal/model"
)

// DefaultLimit 是默认遍历的最近发布数量。
const DefaultLimit = 52

// ErrNoReleases 表示仓库中没有任何标签。这是正常终止条件，不是失败。
var ErrNoReleases = errors.New("no releases found")

// Lister 列出按版本升序排好的全部标签。
type Lister interface {
	Tags(ctx context.Context, dir string) ([]model.Tag, error)
}

// Selector 从 Lister 的结果中截取最近 limit 个标签。
type Selector struct {
	lister Lister
	limit  int
}

// NewSelector 创建 Selector；limit <= 0 时使用 DefaultLimit。
func NewSelector(lister Lister, limit int) *Selector {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Selector{
		lister: lister,
		limit:  limit,
	}
}

// Limit 返回生效的上限。
func (s *Selector) Limit() int {
	return s.limit
}

// Select 返回 dir 仓库中最近的 limit 个标签（仍按版本升序）。
// 没有标签时返回 ErrNoReleases。
func (s *Selector) Select(ctx context.Context, dir string) (model.TagSet, error) {
	all, err := s.lister.Tags(ctx, dir)
	if err != nil {
		return nil, err
	}

	selected := Newest(all, s.limit)
	if len(selected) == 0 {
		return nil, ErrNoReleases
	}
	return selected, nil
}

// Newest 返回 sorted 末尾最多 limit 个元素的副本。
func Newest(sorted []model.Tag, limit int) model.TagSet {
	if limit < 0 {
		limit = 0
	}
	start := max(len(sorted)-limit, 0)
	return append(model.TagSet(nil), sorted[start:]...)
}
