package category

import (
	"time"
)

// Category 图书分类实体
// 两级分类树:Level=1为一级分类,Level=2为二级分类,
// ParentID指向上级分类(一级分类为0)
type Category struct {
	ID          uint
	Name        string
	Level       int  // 分类层级(1或2)
	ParentLevel int  // 上级分类层级(一级分类为0)
	ParentID    uint // 上级分类ID(一级分类为0)
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Children 下级分类(查询树时由仓储装配,不持久化)
	Children []*Category
}

// NewCategory 创建分类(工厂方法)
func NewCategory(name string, level, parentLevel int, parentID uint) *Category {
	now := time.Now()
	return &Category{
		Name:        name,
		Level:       level,
		ParentLevel: parentLevel,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新分类信息
func (c *Category) UpdateInfo(name string, level, parentLevel int, parentID uint) {
	if name != "" {
		c.Name = name
	}
	if level != 0 {
		c.Level = level
	}
	c.ParentLevel = parentLevel
	c.ParentID = parentID
	c.UpdatedAt = time.Now()
}
