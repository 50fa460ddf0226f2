package query

// TodoKeywords is the ordered topic vocabulary for schedule queries.
// The first entry contained in a query wins, so order is the tie-break.
var TodoKeywords = []string{
	"운동", "스터디", "점심", "조깅", "강의", "복습", "모임", "과제",
	"세미나", "회의", "발표", "식사", "외식", "논문", "AI", "인턴", "프로젝트",
	"시험", "시험공부", "학습", "독서", "여행", "휴식", "정리", "청소",
	"쇼핑", "장보기", "약속", "친구", "가족", "영화", "드라마",
	"게임", "취미", "취업", "자격증", "자기계발", "자기개발", "자기관리",
}

// CategoryKeywords is the ordered category vocabulary for announcement queries.
var CategoryKeywords = []string{
	"장학", "휴학", "복학", "계절학기",
	"학점교류", "현장실습", "공모전", "AI",
	"교육", "워크숍", "강의", "등록", "인공지능", "빅데이터",
	"학술", "연구", "학회", "학술대회",
	"졸업", "논문", "인턴", "성평등", "폭력예방",
	"학생회", "모집", "행사", "세미나",
	"학사", "공지", "학적", "수업", "시험",
	"학위", "입학", "전형", "장학금", "장학제도",
	"학술제", "학술행사", "학생복지", "학생지원",
	"학생회", "학생활동", "학생자치", "학생회비",
}

// SimpleCategories are high-precision categories for which exact filtering
// is returned directly, without semantic ranking.
var SimpleCategories = map[string]bool{
	"모집": true, "장학": true, "휴학": true, "복학": true,
	"논문": true, "교육": true, "공모전": true, "현장실습": true,
}

// IsSimpleCategory reports whether keyword belongs to SimpleCategories.
func IsSimpleCategory(keyword string) bool {
	return SimpleCategories[keyword]
}

// ScheduleExamples are the canned schedule questions offered to users.
var ScheduleExamples = []string{
	"2025년 8월 2일 일정 뭐 있어?",
	"운동 있는 날은 언제야?",
	"점심 약속 있는 날 알려줘",
	"스터디 모임이 있는 날은 언제야?",
}

// AnnouncementExamples are the canned announcement questions offered to users.
var AnnouncementExamples = []string{
	"2025년도 2학기 복학 신청 일정 언제야?",
	"현재 모집하는 행사는 어떤게 있어?",
	"장학금 관련 공지 알려줘",
	"합격자 발표 나온거 있어?",
}
