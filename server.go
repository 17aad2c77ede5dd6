package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/consts"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/di"

	"github.com/gin-gonic/gin"
)

func runServe(configDir string) error {
	app, cleanup, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	defer cleanup()

	r := buildEngine(app, GetFrontendAssets())

	// 打印启动欢迎语
	printWelcomeMessage(app.Config)

	srv := &http.Server{
		Addr:              ":" + app.Config.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", app.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务强制关闭: %w", err)
	}
	log.Println("✅ 服务已退出")
	return nil
}

// buildEngine distFS 为 nil 时不挂载前端
func buildEngine(app *di.Application, distFS fs.FS) *gin.Engine {
	r := gin.Default()
	app.Router.Init(r)

	var indexData []byte
	if distFS != nil {
		indexData = setupFrontend(r, distFS)
	}
	r.NoRoute(getNoRouteHandler(distFS, indexData, app.Config.Storage.URLPrefix))
	return r
}

// getNoRouteHandler API 与图片前缀返回 JSON 404，其余路径交给前端（SPA 回退到 index.html）
func getNoRouteHandler(distFS fs.FS, indexData []byte, storagePrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		if strings.HasPrefix(reqPath, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API not found"})
			return
		}
		if storagePrefix != "" && strings.HasPrefix(reqPath, storagePrefix) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		if distFS == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		path := strings.TrimPrefix(reqPath, "/")
		if path == "" {
			c.Data(http.StatusOK, "text/html; charset=utf-8", indexData)
			return
		}

		// 尝试直接服务根目录下的静态文件 (如 favicon.ico)
		if f, err := distFS.Open(path); err == nil {
			stat, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !stat.IsDir() {
				c.FileFromFS(path, http.FS(distFS))
				return
			}
		}

		c.Data(http.StatusOK, "text/html; charset=utf-8", indexData)
	}
}

func printWelcomeMessage(cfg *config.Config) {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🖼️  存储驱动 : %s (%s)\n", cfg.Storage.Driver, cfg.Storage.Bucket)
	fmt.Printf(" │   🔐  身份校验 : %s\n", cfg.Auth.Verifier)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

type routeInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

func exportAPI(r *gin.Engine, output string) error {
	var exportList []routeInfo
	for _, route := range r.Routes() {
		exportList = append(exportList, routeInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	data, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(output, data, 0644)
}

// checkSecurePath 本地图片目录会被直接对外提供，不能指向源码目录
func checkSecurePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("无法获取当前工作目录: %w", err)
	}

	if absPath == cwd {
		return fmt.Errorf("安全配置错误: 本地存储目录 '%s' 不能设置为项目根目录", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}

	// 位于工作目录内时，只允许这些子目录
	allowedDirs := []string{"uploads", "public", "static", "storage", "tmp"}
	firstComponent := strings.Split(filepath.ToSlash(rel), "/")[0]
	for _, allowed := range allowedDirs {
		if strings.EqualFold(firstComponent, allowed) {
			return nil
		}
	}
	return fmt.Errorf("安全配置错误: 本地存储目录 '%s' 必须位于 %v 之一", path, allowedDirs)
}
