package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"heimdall-http-service/models"
)

func testRoster() []models.Attendee {
	now := time.Now()
	return []models.Attendee{
		{Name: "Natalie Wong", Status: models.AttendeeStatusSafe, SafeAt: &now},
		{Name: "Ali Khan", Status: models.AttendeeStatusInProgress},
		{Name: "Bob Chen", Status: models.AttendeeStatusSafe, SafeAt: &now},
		{Name: "alicia Zhang", Status: models.AttendeeStatusInProgress},
	}
}

func TestBuildRosterSummaryCounts(t *testing.T) {
	summary := BuildRosterSummary(testRoster(), "")

	if summary.Total != 4 {
		t.Fatalf("总数应为4, 实际为%d", summary.Total)
	}
	if summary.SafeCount != 2 || summary.InProgressCount != 2 {
		t.Fatalf("计数错误: safe=%d, in_progress=%d", summary.SafeCount, summary.InProgressCount)
	}
	if summary.Total != summary.SafeCount+summary.InProgressCount {
		t.Fatal("总数应等于安全数与疏散中数之和")
	}
}

func TestBuildRosterSummaryCountsIgnoreSearch(t *testing.T) {
	// 过滤只影响分组列表，计数始终基于全量名单
	summary := BuildRosterSummary(testRoster(), "ali")

	if summary.Total != 4 || summary.SafeCount != 2 || summary.InProgressCount != 2 {
		t.Fatalf("过滤不应影响计数: total=%d, safe=%d, in_progress=%d",
			summary.Total, summary.SafeCount, summary.InProgressCount)
	}

	// "ali"匹配 Ali Khan、alicia Zhang、Natalie Wong
	if len(summary.Safe) != 1 || summary.Safe[0].Name != "Natalie Wong" {
		t.Fatalf("安全列表过滤错误: %v", summary.Safe)
	}
	if len(summary.InProgress) != 2 {
		t.Fatalf("疏散中列表应有2人, 实际为%d", len(summary.InProgress))
	}
}

func TestFilterAttendeesByName(t *testing.T) {
	roster := testRoster()

	// 空搜索词返回全集
	if filtered := FilterAttendeesByName(roster, ""); len(filtered) != 4 {
		t.Fatalf("空搜索词应返回全集, 实际为%d", len(filtered))
	}

	// 大小写不敏感的子串匹配
	filtered := FilterAttendeesByName(roster, "ALI")
	if len(filtered) != 3 {
		t.Fatalf("ALI应匹配3人, 实际为%d", len(filtered))
	}

	// 无匹配返回空
	if filtered := FilterAttendeesByName(roster, "不存在"); len(filtered) != 0 {
		t.Fatal("无匹配时应返回空")
	}
}

func TestSortAttendeesByName(t *testing.T) {
	roster := []models.Attendee{
		{Name: "Charlie"},
		{Name: "Alice"},
		{Name: "Bob"},
	}
	SortAttendeesByName(roster)

	want := []string{"Alice", "Bob", "Charlie"}
	for i, name := range want {
		if roster[i].Name != name {
			t.Fatalf("排序错误: 位置%d应为%s, 实际为%s", i, name, roster[i].Name)
		}
	}
}

func TestBuildRosterSummaryEmptyRoster(t *testing.T) {
	summary := BuildRosterSummary(nil, "")

	if summary.Total != 0 || summary.SafeCount != 0 || summary.InProgressCount != 0 {
		t.Fatal("空名单的计数应全为0")
	}
	// 分组列表应为空切片而非nil，保证JSON序列化为[]
	if summary.Safe == nil || summary.InProgress == nil {
		t.Fatal("空名单的分组列表应为空切片")
	}
}

// mockRedisService 实现InterfaceRedisService的内存版本
type mockRedisService struct {
	rosters map[string][]models.Attendee
	tickets map[string]*ExportTicket
	entries map[string]bool
}

func (m *mockRedisService) Set(key string, value interface{}, expiration time.Duration) error {
	return nil
}
func (m *mockRedisService) Get(key string, dest interface{}) error {
	return errors.New("缓存不存在")
}

func (m *mockRedisService) Delete(key string) error { return nil }

func (m *mockRedisService) CacheRoster(eventID string, roster []models.Attendee, expiration time.Duration) error {
	if m.rosters == nil {
		m.rosters = make(map[string][]models.Attendee)
	}
	m.rosters[eventID] = roster
	return nil
}

func (m *mockRedisService) GetCachedRoster(eventID string) ([]models.Attendee, error) {
	roster, ok := m.rosters[eventID]
	if !ok {
		return nil, errors.New("缓存不存在")
	}
	return roster, nil
}

func (m *mockRedisService) StoreExportTicket(ticketID string, ticket *ExportTicket, expiration time.Duration) error {
	if m.tickets == nil {
		m.tickets = make(map[string]*ExportTicket)
	}
	m.tickets[ticketID] = ticket
	return nil
}

func (m *mockRedisService) GetExportTicket(ticketID string) (*ExportTicket, error) {
	ticket, ok := m.tickets[ticketID]
	if !ok {
		return nil, errors.New("缓存不存在")
	}
	return ticket, nil
}

func (m *mockRedisService) MarkRegionEntered(eventID string, memberID, regionID uint, expiration time.Duration) (bool, error) {
	if m.entries == nil {
		m.entries = make(map[string]bool)
	}
	key := fmt.Sprintf("%s:%d:%d", eventID, memberID, regionID)
	if m.entries[key] {
		return false, nil
	}
	m.entries[key] = true
	return true, nil
}

func (m *mockRedisService) ClearRegionEntries(eventID string) error {
	prefix := eventID + ":"
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func newAttendeeTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	// 内存库只存在于单个连接上，限制连接池避免读到空库
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Building{}, &models.Member{}, &models.Event{}, &models.Attendee{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("写入测试数据失败: %v", err)
	}
}

// attendeeTestFixture 构造两栋楼宇：协调员A属于A座，事件与其余成员属于B座
type attendeeTestFixture struct {
	db      *gorm.DB
	service InterfaceAttendeeService
	event   *models.Event
	coordA  *models.Member
	coordB  *models.Member
	memberB *models.Member
}

func newAttendeeTestFixture(t *testing.T) *attendeeTestFixture {
	t.Helper()

	db := newAttendeeTestDB(t)

	buildingA := models.Building{Name: "科技园A座", InviteCode: "INVITE-A", CreatedBy: 1}
	buildingB := models.Building{Name: "科技园B座", InviteCode: "INVITE-B", CreatedBy: 2}
	mustCreate(t, db, &buildingA)
	mustCreate(t, db, &buildingB)

	coordA := models.Member{BuildingID: buildingA.ID, Name: "协调员甲", Email: "coord-a@example.com", Role: models.RoleCoordinator}
	coordB := models.Member{BuildingID: buildingB.ID, Name: "协调员乙", Email: "coord-b@example.com", Role: models.RoleCoordinator}
	memberB := models.Member{BuildingID: buildingB.ID, Name: "成员乙", Email: "member-b@example.com", Role: models.RoleMember}
	mustCreate(t, db, &coordA)
	mustCreate(t, db, &coordB)
	mustCreate(t, db, &memberB)

	event := models.Event{
		ID:              "evt-b-1",
		BuildingID:      buildingB.ID,
		EmergencyTypeID: 1,
		Name:            "火灾警报",
		Type:            models.EventTypeAlert,
		Status:          models.EventStatusActive,
		TriggeredBy:     coordB.ID,
		StartedAt:       time.Now(),
	}
	mustCreate(t, db, &event)

	return &attendeeTestFixture{
		db:      db,
		service: NewAttendeeService(db, nil, nil, nil),
		event:   &event,
		coordA:  &coordA,
		coordB:  &coordB,
		memberB: &memberB,
	}
}

func TestManualCheckInRejectsCrossBuildingActor(t *testing.T) {
	f := newAttendeeTestFixture(t)

	// A座协调员不能操作B座的事件
	_, err := f.service.ManualCheckIn(f.event.ID, f.memberB.ID, f.coordA.ID)
	if err == nil {
		t.Fatal("跨楼宇手动签到应被拒绝")
	}

	var count int64
	if err := f.db.Model(&models.Attendee{}).Where("event_id = ?", f.event.ID).Count(&count).Error; err != nil {
		t.Fatalf("查询出勤记录失败: %v", err)
	}
	if count != 0 {
		t.Fatalf("被拒绝的签到不应留下出勤记录, 实际有%d条", count)
	}
}

func TestManualCheckInByCoordinator(t *testing.T) {
	f := newAttendeeTestFixture(t)

	attendee, err := f.service.ManualCheckIn(f.event.ID, f.memberB.ID, f.coordB.ID)
	if err != nil {
		t.Fatalf("同楼宇协调员手动签到失败: %v", err)
	}
	if attendee.Status != models.AttendeeStatusSafe {
		t.Fatalf("手动签到后状态应为safe, 实际为%s", attendee.Status)
	}
	if attendee.CheckedInBy == nil || *attendee.CheckedInBy != f.coordB.ID {
		t.Fatalf("应记录操作者ID=%d, 实际为%v", f.coordB.ID, attendee.CheckedInBy)
	}
	if attendee.SafeAt == nil {
		t.Fatal("手动签到应写入安全时间")
	}
}

func TestManualCheckInRequiresCoordinatorRole(t *testing.T) {
	f := newAttendeeTestFixture(t)

	// 普通成员即便在同楼宇内也无权手动签到
	if _, err := f.service.ManualCheckIn(f.event.ID, f.memberB.ID, f.memberB.ID); err == nil {
		t.Fatal("普通成员手动签到应被拒绝")
	}
}

func TestUpsertStatusSafeAtRoundTrip(t *testing.T) {
	f := newAttendeeTestFixture(t)

	first, err := f.service.UpsertStatus(f.event.ID, f.memberB.ID, models.AttendeeStatusSafe, nil)
	if err != nil {
		t.Fatalf("首次安全确认失败: %v", err)
	}
	if first.SafeAt == nil {
		t.Fatal("安全确认应写入安全时间")
	}

	back, err := f.service.UpsertStatus(f.event.ID, f.memberB.ID, models.AttendeeStatusInProgress, nil)
	if err != nil {
		t.Fatalf("改回疏散中失败: %v", err)
	}
	if back.SafeAt != nil {
		t.Fatal("改回疏散中应清除安全时间")
	}

	again, err := f.service.UpsertStatus(f.event.ID, f.memberB.ID, models.AttendeeStatusSafe, nil)
	if err != nil {
		t.Fatalf("再次安全确认失败: %v", err)
	}
	if again.SafeAt == nil {
		t.Fatal("再次安全确认应写入安全时间")
	}
	// 安全时间由服务端写入，只会前移不会回退
	if again.SafeAt.Before(*first.SafeAt) {
		t.Fatalf("安全时间不应回退: 首次=%v, 再次=%v", first.SafeAt, again.SafeAt)
	}
}

func TestGetRosterFallsBackToCacheOnDBFailure(t *testing.T) {
	f := newAttendeeTestFixture(t)

	cache := &mockRedisService{}
	service := NewAttendeeService(f.db, nil, cache, nil)

	if _, err := service.UpsertStatus(f.event.ID, f.memberB.ID, models.AttendeeStatusSafe, nil); err != nil {
		t.Fatalf("安全确认失败: %v", err)
	}

	// 正常读取会刷新缓存
	roster, err := service.GetRoster(f.event.ID)
	if err != nil {
		t.Fatalf("读取花名册失败: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("花名册应有1条记录, 实际为%d", len(roster))
	}

	// 关闭底层连接模拟数据库不可用
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.Close()

	// 数据库失联时返回最后已知的花名册，而不是清空
	cached, err := service.GetRoster(f.event.ID)
	if err != nil {
		t.Fatalf("数据库失联时应回退到缓存: %v", err)
	}
	if len(cached) != 1 || cached[0].Name != f.memberB.Name {
		t.Fatalf("缓存花名册内容错误: %v", cached)
	}

	// 没有缓存可用时向调用方暴露错误
	empty := NewAttendeeService(f.db, nil, &mockRedisService{}, nil)
	if _, err := empty.GetRoster(f.event.ID); err == nil {
		t.Fatal("数据库失联且无缓存时应返回错误")
	}
}
