package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindJSON(t *testing.T, body string, dest interface{}) error {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")

	return ctx.ShouldBindJSON(dest)
}

func TestReportLocationRequestAcceptsZeroCoordinates(t *testing.T) {
	// 赤道与本初子午线上的0坐标是合法输入
	var req ReportLocationRequest
	if err := bindJSON(t, `{"latitude": 0, "longitude": 0}`, &req); err != nil {
		t.Fatalf("0坐标应通过校验: %v", err)
	}
	if req.Latitude == nil || req.Longitude == nil {
		t.Fatal("经纬度应被绑定")
	}
	if *req.Latitude != 0 || *req.Longitude != 0 {
		t.Fatalf("坐标绑定错误: lat=%v, lon=%v", *req.Latitude, *req.Longitude)
	}
}

func TestReportLocationRequestRejectsMissingCoordinates(t *testing.T) {
	var req ReportLocationRequest
	if err := bindJSON(t, `{"latitude": 31.2304}`, &req); err == nil {
		t.Fatal("缺少经度应校验失败")
	}

	var empty ReportLocationRequest
	if err := bindJSON(t, `{}`, &empty); err == nil {
		t.Fatal("缺少经纬度应校验失败")
	}
}
