package handlers

import (
	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/pkg/api"
)

// ToUserView строит публичное представление пользователя
func ToUserView(user *models.User) api.UserView {
	view := api.UserView{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
	if user.HasImage() {
		image := user.Image
		view.Image = &image
	}
	return view
}

// ToPageView строит конверт страницы с публичными представлениями
func ToPageView(page *storage.Page[models.User]) api.Page[api.UserView] {
	content := make([]api.UserView, 0, len(page.Items))
	for i := range page.Items {
		content = append(content, ToUserView(&page.Items[i]))
	}

	return api.Page[api.UserView]{
		Content:          content,
		NumberOfElements: len(content),
		TotalElements:    page.Total,
		TotalPages:       page.TotalPages(),
		Number:           page.Page,
		Size:             page.Size,
		First:            page.IsFirst(),
		Last:             page.IsLast(),
		HasPrevious:      page.HasPrevious(),
		HasNext:          page.HasNext(),
	}
}

// ToPostView строит представление публикации
func ToPostView(post *models.Post) api.PostView {
	return api.PostView{
		ID:        post.ID,
		Content:   post.Content,
		Timestamp: post.Timestamp.UnixMilli(),
		UserID:    post.UserID,
	}
}
