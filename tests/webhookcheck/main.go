package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"profile_finder/config"
	"profile_finder/models"
	"profile_finder/services"
)

// 手动检查webhook：发送一次搜索，打印规范化后的记录及其选择key
func main() {
	var (
		criteria models.SearchCriteria
		url      string
		timeout  time.Duration
	)
	pflag.StringVarP(&criteria.JobTitle, "job-title", "j", "Software Engineer", "Job title")
	pflag.StringVarP(&criteria.Location, "location", "l", "San Francisco, CA", "Location")
	pflag.StringVarP(&criteria.Industry, "industry", "i", "Technology", "Industry")
	pflag.StringVarP(&url, "url", "u", "", "Webhook URL (defaults to WEBHOOK_URL or the built-in endpoint)")
	pflag.DurationVarP(&timeout, "timeout", "t", 2*time.Minute, "Request timeout")
	pflag.Parse()

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		log.Printf("未加载.env文件: %v", err)
	}
	if url == "" {
		url = os.Getenv("WEBHOOK_URL")
	}
	if url == "" {
		url = config.DefaultWebhookURL
	}

	fmt.Printf("Webhook: %s\n", url)
	fmt.Printf("条件: %+v\n", criteria)

	start := time.Now()
	results, err := services.NewWebhookClient(url, timeout, 1).Search(context.Background(), criteria)
	if err != nil {
		log.Fatalf("搜索失败: %v", err)
	}

	fmt.Printf("耗时: %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Println(services.SearchSucceededNotice(len(results)).Description)

	keys := services.RecordKeys(results)
	for i, r := range results {
		fmt.Printf("\n[%d] %s\n", i+1, r.Name)
		fmt.Printf("    key:       %s\n", keys[i])
		fmt.Printf("    title:     %s\n", r.JobTitle)
		fmt.Printf("    company:   %s\n", r.Company)
		fmt.Printf("    location:  %s\n", r.Location)
		fmt.Printf("    linkedin:  %s\n", r.LinkedinURL)
		if r.HasFollowers() {
			fmt.Printf("    followers: %s\n", r.LinkedinFollowers)
		}
	}
}
