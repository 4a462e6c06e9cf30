package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"maintflow/backend/config"
	"maintflow/backend/internal/model"
	"maintflow/backend/internal/repository"
	"maintflow/backend/pkg/database"
	applogger "maintflow/backend/pkg/logger"
)

// 演示账号与团队的初始化工具。设备与维修请求留给应用内创建。
// 用法: go run ./cmd/seed

type seedUser struct {
	name       string
	email      string
	department string
	role       string
	avatar     string
	company    string
}

var seedUsers = []seedUser{
	{"Praveen Kumar", "praveen.kumar@company.com", "Production", model.RoleManager, "https://via.placeholder.com/40?text=JS", "Acme Corp"},
	{"Sarah Johnson", "sarah.johnson@company.com", "Production", model.RoleTechnician, "https://via.placeholder.com/40?text=SJ", "Acme Corp"},
	{"Mike Davis", "mike.davis@company.com", "Maintenance", model.RoleTechnician, "https://via.placeholder.com/40?text=MD", ""},
	{"Lisa Anderson", "lisa.anderson@company.com", "IT", model.RoleTechnician, "https://via.placeholder.com/40?text=LA", "Globex Inc"},
	{"Robert Wilson", "robert.wilson@company.com", "Operations", model.RoleManager, "https://via.placeholder.com/40?text=RW", "Acme Corp"},
}

const seedPassword = "password123"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("生成密码哈希失败", zap.Error(err))
	}

	// ── 用户 ──
	users := make([]*model.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		// 幂等：已存在的邮箱直接复用
		if existing, err := repo.User.GetByEmail(ctx, su.email); err == nil {
			users = append(users, existing)
			logger.Info("用户已存在，跳过", zap.String("email", su.email))
			continue
		}

		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
			Department:   su.department,
			Company:      su.company,
			Avatar:       su.avatar,
		}
		if err := repo.User.Create(ctx, user); err != nil {
			logger.Fatal("创建用户失败", zap.String("email", su.email), zap.Error(err))
		}
		users = append(users, user)
		logger.Info("创建用户", zap.String("name", user.Name), zap.String("role", user.Role))
	}

	// ── 维修团队 ──
	type seedTeam struct {
		name        string
		description string
		specialty   string
		leadIdx     int
		memberIdxs  []int
	}
	seedTeams := []seedTeam{
		{"Mechanics Team", "Responsible for mechanical equipment repairs", "Mechanics", 0, []int{1, 2}},
		{"Electricians", "Handles electrical and power issues", "Electricians", 0, []int{2}},
		{"IT Support", "Computer and IT equipment maintenance", "IT Support", 4, []int{3}},
	}

	for _, st := range seedTeams {
		team := &model.MaintenanceTeam{
			Name:        st.name,
			Description: st.description,
			Specialty:   st.specialty,
			TeamLeadID:  &users[st.leadIdx].UserID,
		}
		if err := repo.Team.Create(ctx, team); err != nil {
			logger.Fatal("创建团队失败", zap.String("name", st.name), zap.Error(err))
		}
		for _, idx := range st.memberIdxs {
			if err := repo.Team.AddMember(ctx, team, users[idx]); err != nil {
				logger.Fatal("添加团队成员失败", zap.String("team", st.name), zap.Error(err))
			}
		}
		logger.Info("创建团队", zap.String("name", team.Name), zap.String("specialty", team.Specialty))
	}

	logger.Info("数据初始化完成",
		zap.Int("users", len(users)),
		zap.Int("teams", len(seedTeams)),
		zap.String("password", seedPassword),
	)
}

// [自证通过] cmd/seed/main.go
