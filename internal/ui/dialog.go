package ui

import (
	"context"
	"errors"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

// Dialog shows blocking messages and questions to the user.
type Dialog interface {
	Alert(ctx context.Context, message string) error
	Confirm(ctx context.Context, message string) (bool, error)
}

type Clipboard interface {
	WriteAll(text string) error
}

// Reloader re-syncs the whole view with the server after an admin change.
type Reloader interface {
	Reload(ctx context.Context) error
}

type ReloadFunc func(ctx context.Context) error

func (f ReloadFunc) Reload(ctx context.Context) error {
	return f(ctx)
}

const (
	msgNetworkError   = "网络错误，请重试"
	msgBookFailed     = "预订失败: "
	msgCopied         = "已复制: "
	msgCreateOK       = "创建成功！页面将刷新..."
	msgCreateFailed   = "创建失败: "
	msgDeleteConfirm  = "确定要删除这个班次吗？相关的所有预订也将被删除！"
	msgDeleteOK       = "删除成功！页面将刷新..."
	msgDeleteFailed   = "删除失败: "
	msgNoBookings     = "暂无预订记录"
	msgDetailsFailed  = "加载失败，请刷新页面重试"
	labelSubmit       = "提交预订"
	labelSubmitting   = "提交中..."
	labelBooked       = "预订成功"
	labelShowDetails  = "查看预订详情"
	labelHideDetails  = "隐藏预订详情"
	labelCreateTour   = "创建班次"
	labelCreatingTour = "创建中..."
)

// failureMessage picks the text for a failed request: the server message
// behind prefix for rejections, a generic network message otherwise.
func failureMessage(prefix string, err error) string {
	if msg, ok := domain.AsRejected(err); ok {
		return prefix + msg
	}
	return msgNetworkError
}

// alertFailure shows the failure and returns err joined with any dialog error.
func alertFailure(ctx context.Context, d Dialog, prefix string, err error) error {
	if alertErr := d.Alert(ctx, failureMessage(prefix, err)); alertErr != nil {
		return errors.Join(err, alertErr)
	}
	return err
}
