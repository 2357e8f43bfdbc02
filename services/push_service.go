package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"heimdall-http-service/config"
	"heimdall-http-service/models"
)

// InterfacePushService 定义推送服务接口
type InterfacePushService interface {
	Connect() error
	Disconnect()
	IsReady() bool
	PublishAlertToMember(pushToken string, msg *AlertMessage) error
	PublishEventStatus(event *models.Event) error
	PublishAttendeeStatus(attendee *models.Attendee) error
	PublishCheckInPrompt(eventID string, memberID uint, regionName string) error
	PublishSystemMessage(messageType string, message map[string]interface{}) error
}

// PushService 基于MQTT的推送与实时变更分发服务
type PushService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 用于保护MQTT消息发布
}

// 主题常量
const (
	// 警报下发主题，按推送令牌区分接收者: heimdall/alert/incoming/<push_token>
	TopicAlertIncoming = "heimdall/alert/incoming"

	// 事件状态变更主题: heimdall/event/status/<event_id>
	TopicEventStatus = "heimdall/event/status"

	// 出勤状态变更主题: heimdall/attendee/status/<event_id>
	TopicAttendeeStatus = "heimdall/attendee/status"

	// 签到提示主题: heimdall/checkin/prompt/<event_id>/<member_id>
	TopicCheckInPrompt = "heimdall/checkin/prompt"

	// 系统消息主题
	TopicSystemMessage = "heimdall/system"
)

// 消息结构体定义
type (
	// AlertMessage 警报下发消息，payload字段用于客户端深链跳转
	AlertMessage struct {
		AlertType         string `json:"alert_type"` // drill, alert
		BuildingID        uint   `json:"building_id"`
		EventID           string `json:"event_id"`
		EmergencyTypeID   uint   `json:"emergency_type_id"`
		EmergencyTypeName string `json:"emergency_type_name"`
		EventName         string `json:"event_name"`
		Timestamp         int64  `json:"timestamp"` // Unix毫秒时间戳
	}

	// EventStatusMessage 事件状态变更消息
	EventStatusMessage struct {
		EventID   string `json:"event_id"`
		Status    string `json:"status"` // active, completed
		EndedAt   string `json:"ended_at,omitempty"`
		Timestamp int64  `json:"timestamp"`
	}

	// AttendeeStatusMessage 出勤状态变更消息
	AttendeeStatusMessage struct {
		EventID     string `json:"event_id"`
		MemberID    uint   `json:"member_id"`
		Name        string `json:"name"`
		Status      string `json:"status"` // in_progress, safe
		SafeAt      string `json:"safe_at,omitempty"`
		CheckedInBy *uint  `json:"checked_in_by,omitempty"`
		Timestamp   int64  `json:"timestamp"`
	}

	// CheckInPromptMessage 签到提示消息
	CheckInPromptMessage struct {
		EventID    string `json:"event_id"`
		MemberID   uint   `json:"member_id"`
		RegionName string `json:"region_name"` // 触发提示的集合点名称
		Timestamp  int64  `json:"timestamp"`
	}

	// SystemMessage 系统消息
	SystemMessage struct {
		Type      string      `json:"type"`
		Level     string      `json:"level"`
		Message   string      `json:"message"`
		Data      interface{} `json:"data,omitempty"`
		Timestamp int64       `json:"timestamp"`
	}
)

// NewPushService 创建一个新的推送服务实现
func NewPushService(cfg *config.Config) InterfacePushService {
	service := &PushService{
		Config:      cfg,
		IsConnected: false,
	}

	// 设置MQTT客户端
	service.setupMQTTClient()

	return service
}

// setupMQTTClient 设置MQTT客户端
func (s *PushService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.GetMQTTBrokerURL())
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("heimdall-server-%s", uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	// 添加用户名和密码
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 添加TLS配置，支持SSL连接
	if s.Config.MQTTUseTLS {
		log.Println("[MQTT] 使用TLS连接")
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true, // 默认跳过验证，如有CA证书则使用
		}
		opts.SetTLSConfig(tlsConfig)
	}

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		log.Printf("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		log.Println("[MQTT] 成功连接到", s.Config.GetMQTTBrokerURL())
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()
	})

	// 设置重连回调
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		log.Println("[MQTT] 正在尝试重连...")
	})

	// 创建客户端
	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器
func (s *PushService) Connect() error {
	token := s.Client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("连接MQTT服务器超时")
	}
	if token.Error() != nil {
		return fmt.Errorf("连接MQTT服务器失败: %v", token.Error())
	}

	s.connectedMutex.Lock()
	s.IsConnected = true
	s.connectedMutex.Unlock()

	return nil
}

// Disconnect 断开MQTT连接
func (s *PushService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}

	s.connectedMutex.Lock()
	s.IsConnected = false
	s.connectedMutex.Unlock()
}

// IsReady 检查推送通道是否可用
func (s *PushService) IsReady() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.IsConnected && s.Client.IsConnected()
}

// publishMessage 发布消息到指定主题
func (s *PushService) publishMessage(topic string, payload interface{}) error {
	// 加锁保护发布过程，避免并发发布冲突
	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	// 检查连接状态
	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if !isConnected {
		log.Printf("[MQTT] 客户端未连接，尝试重新连接...")
		if err := s.Connect(); err != nil {
			return fmt.Errorf("MQTT客户端未连接: %v", err)
		}
	}

	// 序列化消息
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	// 发布消息，使用QoS 1确保消息至少被传递一次
	qos := byte(1)
	retained := false // 非持久消息

	token := s.Client.Publish(topic, qos, retained, jsonData)

	// 设置超时时间，避免无限等待
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布消息超时")
	}

	if token.Error() != nil {
		return fmt.Errorf("发布消息失败: %v", token.Error())
	}

	return nil
}

// PublishAlertToMember 向单个成员的推送通道下发警报
func (s *PushService) PublishAlertToMember(pushToken string, msg *AlertMessage) error {
	if pushToken == "" {
		return fmt.Errorf("推送令牌为空")
	}

	msg.Timestamp = time.Now().UnixMilli()
	topic := fmt.Sprintf("%s/%s", TopicAlertIncoming, pushToken)
	return s.publishMessage(topic, msg)
}

// PublishEventStatus 发布事件状态变更
func (s *PushService) PublishEventStatus(event *models.Event) error {
	msg := EventStatusMessage{
		EventID:   event.ID,
		Status:    event.Status,
		Timestamp: time.Now().UnixMilli(),
	}
	if event.EndedAt != nil {
		msg.EndedAt = event.EndedAt.UTC().Format(time.RFC3339)
	}

	topic := fmt.Sprintf("%s/%s", TopicEventStatus, event.ID)
	return s.publishMessage(topic, msg)
}

// PublishAttendeeStatus 发布出勤状态变更
func (s *PushService) PublishAttendeeStatus(attendee *models.Attendee) error {
	msg := AttendeeStatusMessage{
		EventID:     attendee.EventID,
		MemberID:    attendee.MemberID,
		Name:        attendee.Name,
		Status:      attendee.Status,
		CheckedInBy: attendee.CheckedInBy,
		Timestamp:   time.Now().UnixMilli(),
	}
	if attendee.SafeAt != nil {
		msg.SafeAt = attendee.SafeAt.UTC().Format(time.RFC3339)
	}

	topic := fmt.Sprintf("%s/%s", TopicAttendeeStatus, attendee.EventID)
	return s.publishMessage(topic, msg)
}

// PublishCheckInPrompt 发布签到提示
func (s *PushService) PublishCheckInPrompt(eventID string, memberID uint, regionName string) error {
	msg := CheckInPromptMessage{
		EventID:    eventID,
		MemberID:   memberID,
		RegionName: regionName,
		Timestamp:  time.Now().UnixMilli(),
	}

	topic := fmt.Sprintf("%s/%s/%d", TopicCheckInPrompt, eventID, memberID)
	return s.publishMessage(topic, msg)
}

// PublishSystemMessage 发布系统消息
func (s *PushService) PublishSystemMessage(messageType string, message map[string]interface{}) error {
	systemMsg := SystemMessage{
		Type:      messageType,
		Timestamp: time.Now().UnixMilli(),
	}
	if level, ok := message["level"].(string); ok {
		systemMsg.Level = level
	}
	if text, ok := message["message"].(string); ok {
		systemMsg.Message = text
	}
	systemMsg.Data = message["data"]

	return s.publishMessage(TopicSystemMessage, systemMsg)
}
