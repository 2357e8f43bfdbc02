package services

import (
	"math"
	"testing"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

func newTestGeofenceService() InterfaceGeofenceService {
	return NewGeofenceService(&config.Config{GeofenceRadiusMeters: 100}, nil)
}

func TestDistanceMeters(t *testing.T) {
	// 同一点距离为0
	if d := distanceMeters(31.2304, 121.4737, 31.2304, 121.4737); d != 0 {
		t.Fatalf("同一点距离应为0, 实际为%f", d)
	}

	// 纬度相差1度约为111公里
	d := distanceMeters(31.0, 121.0, 32.0, 121.0)
	if math.Abs(d-111195) > 200 {
		t.Fatalf("纬度1度的距离应约为111195米, 实际为%f", d)
	}

	// 约50米的位移应在围栏半径内
	d = distanceMeters(31.2304, 121.4737, 31.23085, 121.4737)
	if d < 40 || d > 60 {
		t.Fatalf("预期约50米, 实际为%f", d)
	}
}

func TestCheckLocationEntryOnlyOnce(t *testing.T) {
	svc := newTestGeofenceService()
	svc.RegisterEventRegions("evt-1", []models.AssemblyPoint{
		{BaseModel: models.BaseModel{ID: 1}, Name: "东门广场", Latitude: 31.2304, Longitude: 121.4737},
	})

	// 远离集合点
	if entered := svc.CheckLocation("evt-1", 1, 31.3, 121.5); len(entered) != 0 {
		t.Fatalf("围栏外不应触发进入, 实际返回%d个区域", len(entered))
	}

	// 进入集合点范围
	entered := svc.CheckLocation("evt-1", 1, 31.2305, 121.4737)
	if len(entered) != 1 || entered[0].Name != "东门广场" {
		t.Fatalf("应返回新进入的区域, 实际为%v", entered)
	}

	// 同一成员重复进入不再返回
	if entered := svc.CheckLocation("evt-1", 1, 31.2304, 121.4737); len(entered) != 0 {
		t.Fatal("重复进入不应再次返回区域")
	}

	// 其他成员进入同一区域各自独立触发
	if entered := svc.CheckLocation("evt-1", 2, 31.2304, 121.4737); len(entered) != 1 {
		t.Fatal("不同成员应各自触发一次进入")
	}
}

func TestClearEventRegions(t *testing.T) {
	svc := newTestGeofenceService()
	svc.RegisterEventRegions("evt-1", []models.AssemblyPoint{
		{BaseModel: models.BaseModel{ID: 1}, Name: "东门广场", Latitude: 31.2304, Longitude: 121.4737},
	})
	svc.CheckLocation("evt-1", 1, 31.2304, 121.4737)

	svc.ClearEventRegions("evt-1")

	if regions := svc.EventRegions("evt-1"); len(regions) != 0 {
		t.Fatal("清除后不应有已注册区域")
	}

	// 重新注册后进入标记也应已清除，可再次触发
	svc.RegisterEventRegions("evt-1", []models.AssemblyPoint{
		{BaseModel: models.BaseModel{ID: 1}, Name: "东门广场", Latitude: 31.2304, Longitude: 121.4737},
	})
	if entered := svc.CheckLocation("evt-1", 1, 31.2304, 121.4737); len(entered) != 1 {
		t.Fatal("清除后重新注册应允许再次触发进入")
	}
}

func TestRegisterEventRegionsReplace(t *testing.T) {
	svc := newTestGeofenceService()
	svc.RegisterEventRegions("evt-1", []models.AssemblyPoint{
		{BaseModel: models.BaseModel{ID: 1}, Name: "东门广场", Latitude: 31.2304, Longitude: 121.4737},
		{BaseModel: models.BaseModel{ID: 2}, Name: "西门停车场", Latitude: 31.2310, Longitude: 121.4700},
	})

	// 重复注册整体替换
	svc.RegisterEventRegions("evt-1", []models.AssemblyPoint{
		{BaseModel: models.BaseModel{ID: 3}, Name: "北门操场", Latitude: 31.2320, Longitude: 121.4750},
	})

	regions := svc.EventRegions("evt-1")
	if len(regions) != 1 || regions[0].Name != "北门操场" {
		t.Fatalf("重复注册应整体替换区域, 实际为%v", regions)
	}
	if regions[0].RadiusMeters != 100 {
		t.Fatalf("半径应取配置值100, 实际为%f", regions[0].RadiusMeters)
	}
}

func TestCheckLocationEntryMarkersSurviveRestart(t *testing.T) {
	cache := &mockRedisService{}
	cfg := &config.Config{GeofenceRadiusMeters: 100}
	points := []models.AssemblyPoint{
		{BaseModel: models.BaseModel{ID: 1}, Name: "东门广场", Latitude: 31.2304, Longitude: 121.4737},
	}

	svc := NewGeofenceService(cfg, cache)
	svc.RegisterEventRegions("evt-1", points)
	if entered := svc.CheckLocation("evt-1", 1, 31.2304, 121.4737); len(entered) != 1 {
		t.Fatal("首次进入应触发提示")
	}

	// 新实例共享同一标记存储，重启后不应重复提示
	restarted := NewGeofenceService(cfg, cache)
	restarted.RegisterEventRegions("evt-1", points)
	if entered := restarted.CheckLocation("evt-1", 1, 31.2304, 121.4737); len(entered) != 0 {
		t.Fatal("重启后已进入的区域不应再次触发提示")
	}

	// 清除事件标记后重新注册可再次触发
	restarted.ClearEventRegions("evt-1")
	restarted.RegisterEventRegions("evt-1", points)
	if entered := restarted.CheckLocation("evt-1", 1, 31.2304, 121.4737); len(entered) != 1 {
		t.Fatal("清除标记后应允许再次触发进入")
	}
}
