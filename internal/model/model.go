package model

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Category{},
		&Tag{},
		&Post{},
		&PostTag{},
		&PostLike{},
		&Comment{},
		&CommentLike{},
		&PostView{},
		&Collection{},
		&SavedPost{},
		&Follow{},
		&Notification{},
	}
}
