package domain

import "context"

// PhotoRepository 照片仓储接口
type PhotoRepository interface {
	// Create 创建照片记录，返回带 ID 的新记录
	Create(ctx context.Context, photo *Photo) (*Photo, error)

	// List 按日期倒序获取全部照片
	List(ctx context.Context) ([]*Photo, error)

	// GetByID 根据ID获取照片，不存在时返回 ErrNotFound
	GetByID(ctx context.Context, id string) (*Photo, error)

	// Delete 删除照片记录，不存在时返回 ErrNotFound
	Delete(ctx context.Context, id string) error
}

// LetterRepository 信件仓储接口
type LetterRepository interface {
	// Create 创建信件
	Create(ctx context.Context, letter *Letter) (*Letter, error)

	// List 按日期倒序获取全部信件
	List(ctx context.Context) ([]*Letter, error)

	// GetByID 根据ID获取信件
	GetByID(ctx context.Context, id string) (*Letter, error)

	// GetByTitle 根据标题获取最早的一封信件
	GetByTitle(ctx context.Context, title string) (*Letter, error)

	// Update 覆盖 title/content/signature/date，返回更新后的记录
	Update(ctx context.Context, letter *Letter) (*Letter, error)

	// Delete 删除信件
	Delete(ctx context.Context, id string) error
}
