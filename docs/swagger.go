package docs

// @title LinkedIn Profile Finder API
// @version 1.0
// @description 按职位、地点和行业搜索LinkedIn候选人档案，结果来自自动化webhook
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
