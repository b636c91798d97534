package routes

import (
	"net/http"

	"majdoorsathi/admin"
	"majdoorsathi/auth"
	"majdoorsathi/categories"
	"majdoorsathi/chats"
	"majdoorsathi/cms"
	"majdoorsathi/contractor"
	"majdoorsathi/feedback"
	"majdoorsathi/hire"
	"majdoorsathi/jobs"
	"majdoorsathi/labour"
	"majdoorsathi/middleware"
	"majdoorsathi/models"
	"majdoorsathi/notifications"
	"majdoorsathi/profile"
	"majdoorsathi/ratelim"
	"majdoorsathi/search"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/labourpic/*filepath", http.Dir("static/labourpic"))
	router.ServeFiles("/static/contractorpic/*filepath", http.Dir("static/contractorpic"))
	router.ServeFiles("/static/cardpic/*filepath", http.Dir("static/cardpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/send-otp", ratelim.RateLimit(auth.SendOTP))
	router.POST("/api/auth/verify-otp", ratelim.RateLimit(auth.VerifyOTP))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetMyProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateMyProfile))
	router.DELETE("/api/profile", middleware.Authenticate(profile.DeleteMyAccount))
	router.POST("/api/profile/avatar", middleware.Authenticate(profile.UploadAvatar))
	router.GET("/api/users/:userid", profile.GetPublicProfile)
}

func AddLabourRoutes(router *httprouter.Router) {
	labourOnly := middleware.RequireRole(models.RoleLabour)

	router.GET("/api/labours", middleware.OptionalAuth(labour.BrowseLabours))
	router.GET("/api/labours/:labourid", middleware.OptionalAuth(labour.GetLabourByID))

	router.POST("/api/labour/profile", middleware.Authenticate(labourOnly(labour.CreateLabourProfile)))
	router.GET("/api/labour/profile", middleware.Authenticate(labourOnly(labour.GetMyLabourProfile)))
	router.PUT("/api/labour/profile", middleware.Authenticate(labourOnly(labour.UpdateLabourProfile)))
	router.DELETE("/api/labour/profile", middleware.Authenticate(labourOnly(labour.DeleteLabourProfile)))
	router.POST("/api/labour/profile/photo", middleware.Authenticate(labourOnly(labour.UploadLabourPhoto)))

	router.POST("/api/labour/card", middleware.Authenticate(labourOnly(labour.SubmitCard)))
	router.GET("/api/labour/card", middleware.Authenticate(labourOnly(labour.GetMyCard)))
	router.GET("/api/labour/card/print", middleware.Authenticate(labourOnly(labour.PrintCard)))
	router.GET("/api/card/verify", ratelim.RateLimit(labour.VerifyCard))
}

func AddContractorRoutes(router *httprouter.Router) {
	contractorOnly := middleware.RequireRole(models.RoleContractor)

	router.GET("/api/contractors", middleware.OptionalAuth(contractor.BrowseContractors))
	router.GET("/api/contractors/:contractorid", middleware.OptionalAuth(contractor.GetContractorByID))

	router.POST("/api/contractor/profile", middleware.Authenticate(contractorOnly(contractor.CreateContractorProfile)))
	router.GET("/api/contractor/profile", middleware.Authenticate(contractorOnly(contractor.GetMyContractorProfile)))
	router.PUT("/api/contractor/profile", middleware.Authenticate(contractorOnly(contractor.UpdateContractorProfile)))
	router.DELETE("/api/contractor/profile", middleware.Authenticate(contractorOnly(contractor.DeleteContractorProfile)))
	router.POST("/api/contractor/profile/photo", middleware.Authenticate(contractorOnly(contractor.UploadContractorPhoto)))
}

func AddJobRoutes(router *httprouter.Router) {
	labourOnly := middleware.RequireRole(models.RoleLabour)

	router.POST("/api/jobs", ratelim.RateLimit(middleware.Authenticate(jobs.CreateJob)))
	router.GET("/api/jobs", middleware.OptionalAuth(jobs.GetJobs))
	router.GET("/api/myjobs", middleware.Authenticate(jobs.GetMyJobs))
	router.GET("/api/jobs/:id", middleware.OptionalAuth(jobs.GetJobByID))
	router.PUT("/api/jobs/:id", middleware.Authenticate(jobs.UpdateJob))
	router.DELETE("/api/jobs/:id", middleware.Authenticate(jobs.DeleteJob))

	router.POST("/api/jobs/:id/apply", middleware.Authenticate(labourOnly(jobs.ApplyToJob)))
	router.DELETE("/api/jobs/:id/apply", middleware.Authenticate(labourOnly(jobs.WithdrawApplication)))
	router.POST("/api/jobs/:id/applications/:appid/accept", middleware.Authenticate(jobs.AcceptApplication))
	router.POST("/api/jobs/:id/applications/:appid/reject", middleware.Authenticate(jobs.RejectApplication))
}

func AddContractorJobRoutes(router *httprouter.Router) {
	labourOnly := middleware.RequireRole(models.RoleLabour)
	contractorOnly := middleware.RequireRole(models.RoleContractor)

	router.POST("/api/contractorjobs", ratelim.RateLimit(middleware.Authenticate(contractorOnly(jobs.CreateContractorJob))))
	router.GET("/api/contractorjobs", middleware.OptionalAuth(jobs.GetContractorJobs))
	router.GET("/api/mycontractorjobs", middleware.Authenticate(contractorOnly(jobs.GetMyContractorJobs)))
	router.GET("/api/contractorjobs/:id", middleware.OptionalAuth(jobs.GetContractorJobByID))
	router.PUT("/api/contractorjobs/:id", middleware.Authenticate(jobs.UpdateContractorJob))
	router.DELETE("/api/contractorjobs/:id", middleware.Authenticate(jobs.DeleteContractorJob))

	router.POST("/api/contractorjobs/:id/apply", middleware.Authenticate(labourOnly(jobs.ApplyToContractorJob)))
	router.DELETE("/api/contractorjobs/:id/apply", middleware.Authenticate(labourOnly(jobs.WithdrawContractorApplication)))
	router.POST("/api/contractorjobs/:id/applications/:appid/accept", middleware.Authenticate(jobs.AcceptContractorApplication))
	router.POST("/api/contractorjobs/:id/applications/:appid/reject", middleware.Authenticate(jobs.RejectContractorApplication))
}

func AddHireRoutes(router *httprouter.Router) {
	router.POST("/api/labours/:labourid/hire", ratelim.RateLimit(middleware.Authenticate(hire.CreateHireRequest)))
	router.GET("/api/hire/incoming", middleware.Authenticate(hire.GetIncomingHireRequests))
	router.GET("/api/hire/outgoing", middleware.Authenticate(hire.GetOutgoingHireRequests))
	router.POST("/api/hire/requests/:id/accept", middleware.Authenticate(hire.AcceptHireRequest))
	router.POST("/api/hire/requests/:id/decline", middleware.Authenticate(hire.DeclineHireRequest))

	router.POST("/api/contractors/:contractorid/hire", ratelim.RateLimit(middleware.Authenticate(hire.CreateContractorHireRequest)))
	router.GET("/api/contractor/hire/incoming", middleware.Authenticate(hire.GetIncomingContractorHires))
	router.GET("/api/contractor/hire/outgoing", middleware.Authenticate(hire.GetOutgoingContractorHires))
	router.POST("/api/contractor/hire/requests/:id/accept", middleware.Authenticate(hire.AcceptContractorHire))
	router.POST("/api/contractor/hire/requests/:id/decline", middleware.Authenticate(hire.DeclineContractorHire))
}

// AddChatRoutes takes the hub so message sends can push to connected
// sockets.
func AddChatRoutes(router *httprouter.Router, hub *chats.Hub) {
	router.GET("/api/chats", middleware.Authenticate(chats.GetChats))
	router.GET("/api/chats/:chatid", middleware.Authenticate(chats.GetChat))
	router.POST("/api/chats/:chatid/messages", middleware.Authenticate(chats.SendMessage(hub)))
	router.POST("/api/chats/:chatid/read", middleware.Authenticate(chats.MarkRead))
	router.PUT("/api/chats/:chatid/messages/:msgid", middleware.Authenticate(chats.EditMessage))
	router.DELETE("/api/chats/:chatid/messages/:msgid", middleware.Authenticate(chats.DeleteMessage))

	router.GET("/ws/chat/:chatid", chats.WebSocketHandler(hub))
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	// mark-all lives on PUT so it cannot collide with the per-ID POST route
	router.PUT("/api/notifications/read", middleware.Authenticate(notifications.MarkAllRead))
	router.POST("/api/notifications/:id/read", middleware.Authenticate(notifications.MarkRead))
	router.DELETE("/api/notifications/:id", middleware.Authenticate(notifications.DeleteNotification))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/ac", search.Autocompleter)
	router.GET("/api/search/:entityType", ratelim.RateLimit(search.SearchHandler))
}

func AddContentRoutes(router *httprouter.Router) {
	router.GET("/api/categories", categories.GetCategories)
	router.GET("/api/cms/:key", cms.GetContent)
	router.POST("/api/feedback", ratelim.RateLimit(middleware.Authenticate(feedback.SubmitFeedback)))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.POST("/api/admin/login", ratelim.RateLimit(admin.Login))
	router.POST("/api/admin/admins", middleware.AdminAuthenticate(admin.CreateAdmin))

	router.GET("/api/admin/dashboard", middleware.AdminAuthenticate(admin.Dashboard))

	router.GET("/api/admin/users", middleware.AdminAuthenticate(admin.ListUsers))
	router.GET("/api/admin/users/:userid", middleware.AdminAuthenticate(admin.GetUser))
	router.POST("/api/admin/users/:userid/block", middleware.AdminAuthenticate(admin.BlockUser))
	router.POST("/api/admin/users/:userid/unblock", middleware.AdminAuthenticate(admin.UnblockUser))
	router.DELETE("/api/admin/users/:userid", middleware.AdminAuthenticate(admin.DeleteUser))
	router.GET("/api/admin/labours", middleware.AdminAuthenticate(admin.ListLabours))
	router.GET("/api/admin/contractors", middleware.AdminAuthenticate(admin.ListContractors))

	router.GET("/api/admin/verifications", middleware.AdminAuthenticate(admin.ListVerifications))
	router.POST("/api/admin/verifications/:id/approve", middleware.AdminAuthenticate(admin.ApproveVerification))
	router.POST("/api/admin/verifications/:id/reject", middleware.AdminAuthenticate(admin.RejectVerification))

	router.GET("/api/admin/cms", middleware.AdminAuthenticate(admin.ListContent))
	router.PUT("/api/admin/cms/:key", middleware.AdminAuthenticate(admin.UpsertContent))
	router.DELETE("/api/admin/cms/:key", middleware.AdminAuthenticate(admin.DeleteContent))

	router.POST("/api/admin/categories", middleware.AdminAuthenticate(admin.CreateCategory))
	router.PUT("/api/admin/categories/:id", middleware.AdminAuthenticate(admin.UpdateCategory))
	router.DELETE("/api/admin/categories/:id", middleware.AdminAuthenticate(admin.DeleteCategory))

	router.POST("/api/admin/broadcasts", middleware.AdminAuthenticate(admin.SendBroadcast))
	router.GET("/api/admin/broadcasts", middleware.AdminAuthenticate(admin.ListBroadcasts))
	router.DELETE("/api/admin/broadcasts/:id", middleware.AdminAuthenticate(admin.DeleteBroadcast))

	router.GET("/api/admin/feedback", middleware.AdminAuthenticate(feedback.ListFeedback))
}
