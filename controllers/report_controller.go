package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"heimdall-http-service/services/container"
)

// ReportController 处理出勤报告导出相关的请求
type ReportController struct {
	BaseControllerImpl
}

// NewReportController 创建一个新的报告控制器
func (f *ControllerFactory) NewReportController(ctx *gin.Context) *ReportController {
	return &ReportController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// ExportReport 导出事件出勤报告
// @Summary      导出出勤报告
// @Description  生成事件出勤CSV报告并返回限时下载链接（30分钟有效），协调员及以上可操作
// @Tags         Report
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "事件ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /events/{id}/report [post]
func (c *ReportController) ExportReport() {
	result, err := c.Container.GetReportService().ExportReport(
		currentBuildingID(c.Context), c.Context.Param("id"), currentUserID(c.Context))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "导出报告失败: " + err.Error(),
			"data":    nil,
		})
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "导出报告成功",
		"data":    result,
	})
}

// DownloadReport 下载出勤报告
// @Summary      下载出勤报告
// @Description  通过限时签名链接下载CSV报告，链接过期或无效时返回404
// @Tags         Report
// @Produce      text/csv
// @Param        token path string true "下载令牌"
// @Success      200  {string}  string  "CSV文件内容"
// @Failure      404  {object}  map[string]interface{}
// @Router       /reports/download/{token} [get]
func (c *ReportController) DownloadReport() {
	ticket, err := c.Container.GetReportService().DownloadReport(c.Context.Param("token"))
	if err != nil {
		c.Context.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": err.Error(),
			"data":    nil,
		})
		return
	}

	filename := fmt.Sprintf("attendance-%s.csv", ticket.EventID)
	c.Context.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Context.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(ticket.CSV))
}

// HandleReportFunc 返回一个处理报告请求的Gin处理函数
func HandleReportFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewReportController(ctx)

		switch method {
		case "exportReport":
			controller.ExportReport()
		case "downloadReport":
			controller.DownloadReport()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
