package services

import (
	"strings"
	"testing"
	"time"

	"heimdall-http-service/models"
)

func TestBuildAttendanceCSV(t *testing.T) {
	safeAt := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	checkedInBy := uint(7)

	roster := []models.Attendee{
		{Name: "Ali Khan", Status: models.AttendeeStatusSafe, SafeAt: &safeAt},
		{Name: "Bob Chen", Status: models.AttendeeStatusInProgress},
		{Name: "Chen Wei", Status: models.AttendeeStatusSafe, SafeAt: &safeAt, CheckedInBy: &checkedInBy},
	}
	checkerNames := map[uint]string{7: "Coordinator Liu"}

	csvText, err := BuildAttendanceCSV(roster, checkerNames)
	if err != nil {
		t.Fatalf("生成CSV失败: %v", err)
	}

	lines := strings.Split(strings.TrimRight(csvText, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("应有表头和3行数据, 实际为%d行", len(lines))
	}

	if lines[0] != "name,status,checked_in_at,checked_in_by" {
		t.Fatalf("表头错误: %s", lines[0])
	}
	if lines[1] != "Ali Khan,safe,2026-08-15T09:30:00Z," {
		t.Fatalf("safe行的签到时间应为ISO-8601格式: %s", lines[1])
	}
	if lines[2] != "Bob Chen,in_progress,," {
		t.Fatalf("in_progress行的签到时间应为空: %s", lines[2])
	}
	if lines[3] != "Chen Wei,safe,2026-08-15T09:30:00Z,Coordinator Liu" {
		t.Fatalf("手动签到行应包含操作人姓名: %s", lines[3])
	}
}

func TestBuildAttendanceCSVCheckerFallback(t *testing.T) {
	safeAt := time.Now()
	checkedInBy := uint(99)

	// 操作人已被移出楼宇时回退为数字ID
	roster := []models.Attendee{
		{Name: "Ali Khan", Status: models.AttendeeStatusSafe, SafeAt: &safeAt, CheckedInBy: &checkedInBy},
	}

	csvText, err := BuildAttendanceCSV(roster, map[uint]string{})
	if err != nil {
		t.Fatalf("生成CSV失败: %v", err)
	}
	if !strings.Contains(csvText, ",99\n") {
		t.Fatalf("未知操作人应回退为数字ID: %s", csvText)
	}
}

func TestBuildAttendanceCSVEmptyRoster(t *testing.T) {
	csvText, err := BuildAttendanceCSV(nil, nil)
	if err != nil {
		t.Fatalf("生成CSV失败: %v", err)
	}

	// 空名单也应输出表头
	if strings.TrimRight(csvText, "\n") != "name,status,checked_in_at,checked_in_by" {
		t.Fatalf("空名单应只输出表头: %s", csvText)
	}
}

func TestBuildAttendanceCSVEscaping(t *testing.T) {
	roster := []models.Attendee{
		{Name: `Wang, "Da" Wei`, Status: models.AttendeeStatusInProgress},
	}

	csvText, err := BuildAttendanceCSV(roster, nil)
	if err != nil {
		t.Fatalf("生成CSV失败: %v", err)
	}

	// 包含逗号和引号的名字应被正确转义
	if !strings.Contains(csvText, `"Wang, ""Da"" Wei"`) {
		t.Fatalf("名字未被正确转义: %s", csvText)
	}
}
