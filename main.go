// @title           Heimdall HTTP Service API
// @version         1.0
// @description     Building emergency planning and evacuation management service with geofenced check-in and push alerting
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.yourcompany.com/support
// @contact.email  support@yourcompany.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"heimdall-http-service/config"
	"heimdall-http-service/models"
	"heimdall-http-service/routes"
	"heimdall-http-service/utils"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 初始化日志配置
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		config.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		config.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 连接数据库
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("无法连接数据库: %v", err)
	}

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		err = dropAndRecreateTables(db)
		if err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 确保系统中有演示楼宇和管理员账户
	ensureDefaultBuildingExists(db, cfg)

	// 初始化路由
	r := routes.SetupRouter(db, cfg)

	// 启动服务器
	config.Info("服务器启动在: http://localhost:%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		config.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// initDB 初始化数据库连接
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return db, nil
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Building{},
		&models.Member{},
		&models.EmergencyType{},
		&models.InstructionStep{},
		&models.AssemblyPoint{},
		&models.Event{},
		&models.Attendee{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	// 警告: 这将删除所有数据
	log.Println("警告: 正在删除并重建所有表，所有数据将丢失")

	// 禁用外键检查以允许删除表
	db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	defer db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	// 获取所有表名
	var tables []string
	err := db.Raw("SHOW TABLES").Scan(&tables).Error
	if err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}

	// 删除所有表
	for _, table := range tables {
		log.Printf("正在删除表: %s", table)
		err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)).Error
		if err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	// 重新创建所有表
	log.Println("正在重新创建所有表")
	return autoMigrate(db)
}

// ensureDefaultBuildingExists 确保系统中至少有一个楼宇和管理员账户
// 首次启动时创建演示楼宇，便于在没有注册流程的环境中直接使用
func ensureDefaultBuildingExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Building{}).Count(&count)

	if count > 0 {
		return
	}

	building := models.Building{
		Name:        "Demo Building",
		Description: "首次启动自动创建的演示楼宇",
		InviteCode:  utils.RandomInviteCode(0),
	}
	if err := db.Create(&building).Error; err != nil {
		log.Printf("无法创建默认楼宇: %v", err)
		return
	}

	// 密码由模型钩子负责哈希
	admin := models.Member{
		BuildingID: building.ID,
		Name:       "Administrator",
		Email:      cfg.DefaultAdminEmail,
		Password:   cfg.DefaultAdminPassword,
		Role:       models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("无法创建默认管理员: %v", err)
		return
	}

	db.Model(&building).Update("created_by", admin.ID)
	log.Printf("已创建默认楼宇及管理员账户 (邮箱: %s, 邀请码: %s)", admin.Email, building.InviteCode)
}
