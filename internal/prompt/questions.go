package prompt

// Questions 8 체질/아유르베다 32 문항，顺序固定，序号含在文案里
var Questions = []string{
	"1. 육식(고기)을 하면 힘이 나고 소화가 잘 되나요?",
	"2. 생선이나 해산물을 먹으면 속이 편안한가요?",
	"3. 땀을 푹 내고 나면 몸이 가벼워지나요?",
	"4. 땀을 내면 오히려 기운이 빠지고 피곤한가요?",
	"5. 밀가루 음식(면, 빵)을 먹으면 속이 더부룩한가요?",
	"6. 찬 우유를 마시면 설사를 하거나 배가 아픈가요?",
	"7. 사우나나 온탕 목욕을 즐기며 하고 나면 개운한가요?",
	"8. 평소 대변이 묽은 편이며 하루에 여러 번 보나요?",
	"9. 성격이 급하고 일 처리를 빨리 끝내야 직성이 풀리나요?",
	"10. 매사에 신중하고 꼼꼼하며 결정을 내리는 데 시간이 걸리나요?",
	"11. 일광욕이나 햇볕을 쬐는 것을 좋아하나요?",
	"12. 피부가 예민하여 금속 알레르기나 아토피가 있나요?",
	"13. 어깨보다 골격과 하체가 더 발달한 편인가요?",
	"14. 가슴 윗부분(상체)이 발달하고 걸음걸이가 빠른가요?",
	"15. 커피를 마시면 잠이 안 오거나 가슴이 두근거리나요?",
	"16. 술을 조금만 마셔도 얼굴이 심하게 빨개지나요?",
	"17. 화가 나면 얼굴이 달아오르고 위로 열이 솟구치나요?",
	"18. 평소 몸이 차고 아랫배가 냉한 느낌이 있나요?",
	"19. 육식을 끊고 채식만 하면 기운이 없고 무기력해지는 것을 느끼나요?",
	"20. 매운 음식을 먹으면 땀이 비 오듯 쏟아지나요?",
	"21. 포도나 푸른 채소를 먹으면 컨디션이 좋아지나요?",
	"22. 오이나 참외 같은 찬 성질의 과일이 잘 맞나요?",
	"23. 말수가 적고 조용하며 자신의 속마음을 잘 숨기나요?",
	"24. 목소리가 크고 화술이 좋아 사교적인 편인가요?",
	"25. 평소 소화력이 좋아 과식해도 금방 배가 고픈가요?",
	"26. 생각이 너무 많아 불면증에 시달릴 때가 있나요?",
	"27. 손발이 항상 따뜻하고 추위를 별로 안 타나요?",
	"28. 추위를 몹시 타고 찬바람을 맞으면 재채기가 나나요?",
	"29. 비타민 C를 먹으면 속이 쓰리거나 불편한가요?",
	"30. 창의적이고 직관적이지만 끈기가 부족한가요?",
	"31. 한 가지 일에 집요하게 매달리는 집중력이 좋나요?",
	"32. 물을 많이 마시지 않아도 갈증을 별로 안 느끼나요?",
}

// AnswerChoices 每题的四个固定选项
var AnswerChoices = []string{"전혀 아니다", "아니다", "그렇다", "매우 그렇다"}

// DefaultAnswer 未作答时采用的中性选项
const DefaultAnswer = "아니다"

// PairAnswers 把答案按序配到问题上，生成 "问题: 回答" 文本。
// 答案不足 32 条时缺位按 DefaultAnswer 补齐，多余的忽略。
func PairAnswers(answers []string) []string {
	pairs := make([]string, 0, len(Questions))
	for i, q := range Questions {
		a := DefaultAnswer
		if i < len(answers) && answers[i] != "" {
			a = answers[i]
		}
		pairs = append(pairs, q+": "+a)
	}
	return pairs
}
