package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. Stock是该图书当前可借数量,是库存的唯一事实来源
// 3. Stock一旦存在借阅/入库记录,只能通过Repository.AdjustStock变更
//    (entity上故意不提供DecrStock/IncrStock方法,防止绕过台账直接改库存)
// 4. BookNo作为业务编号(数据库层保证唯一性)
type Book struct {
	ID          uint
	Name        string // 书名
	Author      string // 作者
	BookNo      string // 图书编号
	Cover       string // 封面图片URL
	Description string // 图书描述
	Stock       int    // 当前可借库存(非负)
	CategoryID  uint   // 所属分类ID(0表示未分类)
	PublishAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// stock为初始基准库存,必须>=0,由调用方校验
func NewBook(name, author, bookNo, cover, description string, stock int, categoryID uint, publishAt time.Time) *Book {
	now := time.Now()
	return &Book{
		Name:        name,
		Author:      author,
		BookNo:      bookNo,
		Cover:       cover,
		Description: description,
		Stock:       stock,
		CategoryID:  categoryID,
		PublishAt:   publishAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新图书基本信息(领域行为)
// 注意:不包含Stock,库存基准的调整走应用层的锁定+AdjustStock流程
func (b *Book) UpdateInfo(name, author, bookNo, cover, description string, categoryID uint, publishAt time.Time) {
	if name != "" {
		b.Name = name
	}
	if author != "" {
		b.Author = author
	}
	if bookNo != "" {
		b.BookNo = bookNo
	}
	if cover != "" {
		b.Cover = cover
	}
	if description != "" {
		b.Description = description
	}
	if categoryID != 0 {
		b.CategoryID = categoryID
	}
	if !publishAt.IsZero() {
		b.PublishAt = publishAt
	}
	b.UpdatedAt = time.Now()
}

// InStock 是否还有可借库存
func (b *Book) InStock() bool {
	return b.Stock > 0
}
