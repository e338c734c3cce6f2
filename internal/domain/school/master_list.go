// internal/domain/school/master_list.go
package school

// MasterList is the compiled-in school directory used when the trainer has
// not catalogued any schools yet (or the schools table cannot be read).
// Entries are keyed by the exact (school, campus) strings observations use.
var MasterList = []Info{
	{SchoolName: "VSK Sunshine", Campus: "Cổ Nhuế", AMName: "Vivian", AMEmail: "vivian.pham@grapeseed.com"},
	{SchoolName: "VSK Sunshine", Campus: "Mỹ Đình", AMName: "Vivian", AMEmail: "vivian.pham@grapeseed.com"},
	{SchoolName: "VSK Riverside", Campus: "Long Biên", AMName: "Trang Nguyen", AMEmail: "trang.nguyen@grapeseed.com"},
	{SchoolName: "Sakura Montessori", Campus: "Cầu Giấy", AMName: "Trang Nguyen", AMEmail: "trang.nguyen@grapeseed.com"},
	{SchoolName: "Sakura Montessori", Campus: "Hạ Long", AMName: "Minh Le", AMEmail: "minh.le@grapeseed.com"},
	{SchoolName: "Vinschool Times City", Campus: "Park 6", AMName: "Minh Le", AMEmail: "minh.le@grapeseed.com"},
	{SchoolName: "Little Hands", Campus: "Tây Hồ", AMName: "Vivian", AMEmail: "vivian.pham@grapeseed.com"},
}
